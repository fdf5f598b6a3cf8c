// Command xmpserialize converts JSON, YAML, MessagePack or BSON metadata
// documents into XMP RDF/XML.
package main

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	format     string
	namespaces namespaceFlag
	bags       []string
	config     string
	indent     string
	output     string
	debug      bool
}

func newRootCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "xmpserialize [OPTIONS] [FILE]",
		Short:         "Serialize a metadata document as XMP RDF/XML",
		Long:          "Reads a JSON, YAML, MessagePack or BSON document from FILE (or standard input)\nand writes it as an XMP RDF/XML document.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), opts, path, cmd.Flags().Changed("indent"), stdin, stdout)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", "", "Input format: json, yaml, msgpack or bson (default: from the file extension, else json)")
	flags.VarP(&opts.namespaces, "namespace", "n", "Declare a namespace; repeat to add more, order is kept")
	flags.StringArrayVarP(&opts.bags, "bag", "b", nil, "Render sequences under this property key as rdf:Bag; repeatable")
	flags.StringVarP(&opts.config, "config", "c", "", "YAML file with namespaces, bags and indent settings")
	flags.StringVar(&opts.indent, "indent", "", "Indent string; selects the pretty-printed form")
	flags.StringVarP(&opts.output, "output", "o", "", "Write to this file instead of standard output")
	flags.BoolVarP(&opts.debug, "debug", "D", false, "Enable debug logging")

	return cmd
}

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	cmd := newRootCommand(os.Stdin, os.Stdout)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("xmpserialize failed")
		os.Exit(1)
	}
}
