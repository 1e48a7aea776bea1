// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cat implements the cat command, which streams the objects of a PBF
// file to stdout.
package cat

import (
	"bufio"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"m4o.io/osmpbf"
	"m4o.io/osmpbf/cmd/pbf/cli"
	"m4o.io/osmpbf/model"
	"m4o.io/osmpbf/osmconv"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXML  = "xml"
)

var out io.Writer = os.Stdout

var input string

func init() {
	cli.RootCmd.AddCommand(catCmd)

	flags := catCmd.Flags()
	flags.VarP(cli.NewReaderValue("-", &input, "file"), "input", "i", "OSM PBF file to read, - for stdin")
	flags.StringP("format", "f", FormatText, "output format: text, json or xml")
}

var catCmd = &cobra.Command{
	Use:   "cat [<OSM file>]",
	Short: "Print the objects of an OSM file",
	Long:  "Print the nodes, ways and relations of an OSM file, in file order, as text, JSON lines or OSM XML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := input
		if len(args) == 1 {
			name = args[0]
		}

		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}

		in, err := cli.OpenInput(name, cli.Settings.Progress)
		if err != nil {
			return err
		}
		defer in.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		return runCat(ctx, in, format, cli.Settings.DecoderOptions()...)
	},
}

func runCat(ctx context.Context, in io.Reader, format string, opts ...osmpbf.DecoderOption) error {
	var write func(*osmpbf.Decoder, *bufio.Writer) error

	switch format {
	case FormatText:
		write = writeText
	case FormatJSON:
		write = writeJSON
	case FormatXML:
		write = writeXML
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	d, err := osmpbf.NewDecoder(ctx, in, opts...)
	if err != nil {
		return err
	}
	defer d.Close()

	w := bufio.NewWriter(out)

	if err := write(d, w); err != nil {
		return err
	}

	return w.Flush()
}

func writeText(d *osmpbf.Decoder, w *bufio.Writer) error {
	for o, err := range d.Objects() {
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, formatText(o)); err != nil {
			return err
		}
	}

	return nil
}

// formatText renders an object on a single line.
func formatText(o model.Object) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %d", o.GetType(), o.GetID())

	switch o := o.(type) {
	case model.Node:
		fmt.Fprintf(&sb, " %s", o.LatLng())
	case model.Way:
		fmt.Fprintf(&sb, " nodes=%v", o.NodeIDs)
	case model.Relation:
		members := make([]string, len(o.Refs))
		for i, ref := range o.Refs {
			members[i] = fmt.Sprintf("%s/%d@%s", ref.Member.Type(), ref.Member.ID(), ref.Role)
		}

		fmt.Fprintf(&sb, " members=[%s]", strings.Join(members, " "))
	}

	tags := o.GetTags()
	for _, k := range tags.Keys() {
		fmt.Fprintf(&sb, " %s=%s", k, tags[k])
	}

	return sb.String()
}

type jsonObject struct {
	Type   string       `json:"type"`
	Object model.Object `json:"object"`
}

func writeJSON(d *osmpbf.Decoder, w *bufio.Writer) error {
	enc := json.NewEncoder(w)

	for o, err := range d.Objects() {
		if err != nil {
			return err
		}

		if err := enc.Encode(jsonObject{Type: o.GetType().String(), Object: o}); err != nil {
			return err
		}
	}

	return nil
}

func writeXML(d *osmpbf.Decoder, w *bufio.Writer) error {
	doc := osmconv.Document(d.Header)

	for o, err := range d.Objects() {
		if err != nil {
			return err
		}

		osmconv.Append(doc, o)
	}

	if _, err := w.WriteString(xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return err
	}

	return w.WriteByte('\n')
}
