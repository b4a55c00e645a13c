package kv

import (
	"fmt"
	"github.com/ValentinKolb/fsbox/cmd/util"
	"github.com/ValentinKolb/fsbox/lib/box"
	"github.com/spf13/cobra"
	"sort"
	"strconv"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			if err := localStore.Write(key, []byte(value)); err != nil {
				return err
			} else {
				fmt.Println("set successfully")
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if resp, ok, err := localStore.Read(key); err != nil {
				return err
			} else {
				fmt.Printf("key=%s, found=%v, resp=%s\n", key, ok, resp)
			}
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := localStore.Delete(key); err != nil {
				return err
			} else {
				fmt.Println("delete successfully")
			}
			return nil
		},
	}
	hasCmd = &cobra.Command{
		Use:   "has [key]",
		Short: "Checks if a key exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if found, err := localStore.Has(key); err != nil {
				return err
			} else {
				fmt.Printf("key=%s, found=%t\n", key, found)
			}
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists all keys in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := localStore.List()
			if err != nil {
				return err
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Println(key)
			}
			fmt.Printf("(%d keys)\n", len(keys))
			return nil
		},
	}
	incrCmd = &cobra.Command{
		Use:   "incr [key] [delta]",
		Short: "Increments a persistent counter box and prints the new value",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			delta := int64(1)
			if len(args) == 2 {
				var err error
				delta, err = strconv.ParseInt(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("delta must be a number: %w", err)
				}
			}

			valueCoder, err := util.GetCoder()
			if err != nil {
				return err
			}

			b, err := box.New(localStore, key, int64(0), box.WithCoder[int64](valueCoder))
			if err != nil {
				return err
			}

			value, err := box.Access(b, func(v *int64) (int64, error) {
				*v += delta
				return *v, nil
			})
			if err != nil {
				return err
			}

			fmt.Printf("key=%s, value=%d\n", key, value)
			return nil
		},
	}
)
