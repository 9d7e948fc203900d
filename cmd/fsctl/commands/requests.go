package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
	"github.com/spf13/cobra"
)

// RequestOptions holds the flags shared by request commands.
type RequestOptions struct {
	Where      []string
	Attributes []string
	With       []string
	ObjectID   string
	Cache      string
}

func (o *RequestOptions) addWhereFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&o.Where, "where", "w", nil, "filter as key=value (repeatable)")
	cmd.Flags().StringSliceVar(&o.With, "with", nil, "related resources to include")
}

func (o *RequestOptions) addAttributeFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&o.Attributes, "attr", nil, "attribute as key=value (repeatable)")
}

func (o *RequestOptions) addObjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.ObjectID, "objid", "", "object id")
}

func (o *RequestOptions) addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Cache, "cache", "", "store the response payload in the local cache under this name")
}

// parseKeyValues turns key=value pairs into a map. Values that parse as JSON
// (numbers, booleans, objects) keep their type; anything else is a string.
func parseKeyValues(pairs []string) (map[string]any, error) {
	result := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", constants.KeyValueSplitParts)
		if len(parts) != constants.KeyValueSplitParts || parts[0] == "" {
			return nil, fmt.Errorf("%w: %s", constants.ErrInvalidKeyValue, pair)
		}

		var value any

		err := json.Unmarshal([]byte(parts[1]), &value)
		if err != nil {
			value = parts[1]
		}

		result[parts[0]] = value
	}

	return result, nil
}

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	return newQueryCommand("get", "Get objects of a resource", func(api formsynergy.Client, resource string) formsynergy.Client {
		return api.Get(resource)
	})
}

// NewFindCommand creates the find command.
func NewFindCommand() *cobra.Command {
	return newQueryCommand("find", "Search objects of a resource", func(api formsynergy.Client, resource string) formsynergy.Client {
		return api.Find(resource)
	})
}

// NewDownloadCommand creates the download command.
func NewDownloadCommand() *cobra.Command {
	return newQueryCommand("download", "Download a resource", func(api formsynergy.Client, resource string) formsynergy.Client {
		return api.Download(resource)
	})
}

func newQueryCommand(name, short string, stage func(formsynergy.Client, string) formsynergy.Client) *cobra.Command {
	opts := &RequestOptions{}

	cmd := &cobra.Command{
		Use:   name + " RESOURCE",
		Short: short,
		Long:  short + " filtered with --where",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			where, err := parseKeyValues(opts.Where)
			if err != nil {
				return err
			}

			return runRequest(cmd, args[0], opts, func(ctx context.Context, api formsynergy.Client) {
				staged := stage(api, args[0])
				if len(opts.With) > 0 {
					staged = staged.With(opts.With)
				}

				staged.Where(ctx, where)
			})
		},
	}

	opts.addWhereFlags(cmd)
	opts.addCacheFlags(cmd)

	return cmd
}

// NewCreateCommand creates the create command.
func NewCreateCommand() *cobra.Command {
	opts := &RequestOptions{}

	cmd := &cobra.Command{
		Use:   "create RESOURCE",
		Short: "Create an object",
		Long:  "Create an object of a resource with the given --attr values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attributes, err := parseKeyValues(opts.Attributes)
			if err != nil {
				return err
			}

			return runRequest(cmd, args[0], opts, func(ctx context.Context, api formsynergy.Client) {
				api.Create(args[0]).Attributes(ctx, attributes)
			})
		},
	}

	opts.addAttributeFlags(cmd)
	opts.addCacheFlags(cmd)

	return cmd
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand() *cobra.Command {
	opts := &RequestOptions{}

	var replace bool

	cmd := &cobra.Command{
		Use:   "update RESOURCE",
		Short: "Update an object",
		Long:  "Update the attributes of an object; --replace swaps the whole attribute set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ObjectID == "" {
				return constants.ErrObjectIDRequired
			}

			attributes, err := parseKeyValues(opts.Attributes)
			if err != nil {
				return err
			}

			return runRequest(cmd, args[0], opts, func(ctx context.Context, api formsynergy.Client) {
				staged := api.Get(args[0]).Object(opts.ObjectID)
				if replace {
					staged.Replace(attributes).Send(ctx)

					return
				}

				staged.Update(ctx, attributes)
			})
		},
	}

	opts.addAttributeFlags(cmd)
	opts.addObjectFlags(cmd)
	opts.addCacheFlags(cmd)
	cmd.Flags().BoolVar(&replace, "replace", false, "replace all attributes instead of merging")

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	return newObjectCommand("delete", "Delete an object", func(ctx context.Context, api formsynergy.Client) {
		api.Delete(ctx)
	})
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	return newObjectCommand("verify", "Verify an object", func(ctx context.Context, api formsynergy.Client) {
		api.Verify(ctx)
	})
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	return newObjectCommand("scan", "Scan an object", func(ctx context.Context, api formsynergy.Client) {
		api.Scan(ctx)
	})
}

// NewRenewCommand creates the renew command.
func NewRenewCommand() *cobra.Command {
	return newObjectCommand("renew", "Renew an object", func(ctx context.Context, api formsynergy.Client) {
		api.Renew().Send(ctx)
	})
}

func newObjectCommand(name, short string, send func(context.Context, formsynergy.Client)) *cobra.Command {
	opts := &RequestOptions{}

	cmd := &cobra.Command{
		Use:   name + " RESOURCE",
		Short: short,
		Long:  short + " identified by --objid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ObjectID == "" {
				return constants.ErrObjectIDRequired
			}

			return runRequest(cmd, args[0], opts, func(ctx context.Context, api formsynergy.Client) {
				send(ctx, api.Get(args[0]).Object(opts.ObjectID))
			})
		},
	}

	opts.addObjectFlags(cmd)

	return cmd
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &RequestOptions{}

	var profile string

	cmd := &cobra.Command{
		Use:   "export RESOURCE...",
		Short: "Export resources of a profile",
		Long:  "Export the given resources of the profile selected with --profile or the configured profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, constants.ExportResource, opts, func(ctx context.Context, api formsynergy.Client) {
				if profile != "" {
					api.Load(profile)
				}

				api.Export(ctx, args)
			})
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "profile id")
	opts.addCacheFlags(cmd)

	return cmd
}

// runRequest creates a client, lets send stage and transmit a request, then
// prints the response payload and optionally caches it.
func runRequest(cmd *cobra.Command, resource string, opts *RequestOptions, send func(context.Context, formsynergy.Client)) error {
	if resource == "" {
		return constants.ErrNoResourceProvided
	}

	ctx := commandContext(cmd)

	app, err := newApp(ctx, loadConfig())
	if err != nil {
		return err
	}

	defer func() { _ = app.Close() }()

	api := app.API()
	send(ctx, api)

	err = api.Err()
	if err != nil {
		return fmt.Errorf("%s %s: %w", cmd.Name(), resource, err)
	}

	response := api.Response()
	payload := response.Payload()

	if opts.Cache != "" {
		err = app.Resource(resource).Store(payload, opts.Cache)
		if err != nil {
			return fmt.Errorf("failed to cache response: %w", err)
		}
	}

	return renderData(cmd.OutOrStdout(), payload)
}
