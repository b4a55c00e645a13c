package util

import (
	"fmt"
	"github.com/ValentinKolb/fsbox/lib/coder"
	"github.com/ValentinKolb/fsbox/lib/keycodec"
	"github.com/ValentinKolb/fsbox/lib/logger"
	"github.com/ValentinKolb/fsbox/lib/paths"
	"github.com/ValentinKolb/fsbox/lib/store"
	"github.com/ValentinKolb/fsbox/lib/store/fstore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// AppID identifies this application in platform config paths
	AppID = "fsbox"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStoreFlags adds common store flags to a command
func SetupStoreFlags(cmd *cobra.Command) {
	key := "dir"
	cmd.PersistentFlags().String(key, "", WrapString("The store directory. Defaults to the platform config directory for "+AppID))

	key = "prefix"
	cmd.PersistentFlags().String(key, "", WrapString("Filename prefix marking entries owned by this store"))

	key = "safety-margin"
	cmd.PersistentFlags().Int(key, 8, WrapString("Free-space headroom in MiB required before a write is attempted"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("fsbox")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// ApplyLogLevel configures all loggers from the log-level flag
func ApplyLogLevel() error {
	level, err := logger.ParseLogLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	logger.SetLevelAll(level)
	return nil
}

// GetKeyCodec creates a key codec based on configuration
func GetKeyCodec() (keycodec.IKeyCodec, error) {
	switch viper.GetString("key-codec") {
	case "base64":
		return keycodec.NewBase64KeyCodec(), nil
	case "percent":
		return keycodec.NewPercentKeyCodec(), nil
	default:
		return nil, fmt.Errorf("unknown key codec: %s (must be one of base64, percent)", viper.GetString("key-codec"))
	}
}

// GetCoder creates a value coder based on configuration
func GetCoder() (coder.ICoder, error) {
	switch viper.GetString("coder") {
	case "json":
		return coder.NewJSONCoder(), nil
	case "gob":
		return coder.NewGOBCoder(), nil
	default:
		return nil, fmt.Errorf("unknown coder: %s (must be one of json, gob)", viper.GetString("coder"))
	}
}

// GetStore creates the file store from the configured flags, falling back
// to the platform default directory when --dir is not given
func GetStore() (store.IStore, error) {
	dir := viper.GetString("dir")
	if dir == "" {
		var err error
		dir, err = paths.DefaultDirectory(AppID)
		if err != nil {
			return nil, err
		}
	}

	codec, err := GetKeyCodec()
	if err != nil {
		return nil, err
	}

	opts := fstore.DefaultOptions()
	opts.KeyCodec = codec
	if prefix := viper.GetString("prefix"); prefix != "" {
		opts.Prefix = prefix
	}
	if margin := viper.GetInt("safety-margin"); margin > 0 {
		opts.SafetyMargin = uint64(margin) * 1024 * 1024
	}

	return fstore.NewFileStore(dir, opts)
}
