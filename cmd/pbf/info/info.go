// Copyright 2017-25 the original author or authors.
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

package info

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmpbf"
	"m4o.io/osmpbf/cmd/pbf/cli"
	"m4o.io/osmpbf/model"
)

var out io.Writer = os.Stdout

type extendedHeader struct {
	model.Header

	NodeCount       int64              `json:"node_count"`
	WayCount        int64              `json:"way_count"`
	RelationCount   int64              `json:"relation_count"`
	DataBoundingBox *model.BoundingBox `json:"data_bounding_box,omitempty"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.BoolP("extended", "e", false, "provide extended information (scans entire file)")
}

var infoCmd = &cobra.Command{
	Use:   "info [<OSM file>]",
	Short: "Print information about an OSM file",
	Long:  "Print information about an OSM file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 1 {
			name = args[0]
		}

		flags := cmd.Flags()

		extended, err := flags.GetBool("extended")
		if err != nil {
			return err
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			return err
		}

		in, err := cli.OpenInput(name, cli.Settings.Progress && extended)
		if err != nil {
			return err
		}

		info, err := runInfo(cmd.Context(), in, extended, cli.Settings.DecoderOptions()...)
		if cerr := in.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			return err
		}

		if jsonfmt {
			return renderJSON(info, extended)
		}

		renderTxt(info, extended)

		return nil
	},
}

func runInfo(ctx context.Context, in io.Reader, extended bool, opts ...osmpbf.DecoderOption) (*extendedHeader, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	d, err := osmpbf.NewDecoder(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	info := &extendedHeader{Header: d.Header}

	if !extended {
		return info, nil
	}

	var nc, wc, rc int64

	bbox := model.InitialBoundingBox()

	for o, err := range d.Objects() {
		if err != nil {
			return nil, err
		}

		switch o := o.(type) {
		case model.Node:
			nc++
			bbox.ExpandWithLatLng(o.Lat, o.Lon)
		case model.Way:
			wc++
		case model.Relation:
			rc++
		default:
			return nil, fmt.Errorf("unknown type %T", o)
		}
	}

	info.NodeCount = nc
	info.WayCount = wc
	info.RelationCount = rc

	if !bbox.IsEmpty() {
		info.DataBoundingBox = bbox
	}

	return info, nil
}

func renderJSON(info *extendedHeader, extended bool) error {
	// marshall the smallest struct needed
	var v any
	if extended {
		v = info
	} else {
		v = info.Header
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, string(b))

	return err
}

func renderTxt(info *extendedHeader, extended bool) {
	if info.BoundingBox != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", info.BoundingBox)
	}
	fmt.Fprintf(out, "RequiredFeatures: %s\n", strings.Join(info.RequiredFeatures, ", "))
	fmt.Fprintf(out, "OptionalFeatures: %v\n", strings.Join(info.OptionalFeatures, ", "))
	fmt.Fprintf(out, "WritingProgram: %s\n", info.WritingProgram)
	fmt.Fprintf(out, "Source: %s\n", info.Source)
	fmt.Fprintf(out, "OsmosisReplicationTimestamp: %s\n", info.OsmosisReplicationTimestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "OsmosisReplicationSequenceNumber: %d\n", info.OsmosisReplicationSequenceNumber)
	fmt.Fprintf(out, "OsmosisReplicationBaseURL: %s\n", info.OsmosisReplicationBaseURL)
	if extended {
		fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(info.NodeCount))
		fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(info.WayCount))
		fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(info.RelationCount))
		if info.DataBoundingBox != nil {
			fmt.Fprintf(out, "DataBoundingBox: %s\n", info.DataBoundingBox)
		}
	}
}
