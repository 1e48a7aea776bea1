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

package cli

import (
	"os"

	"github.com/spf13/pflag"
)

// -- input file Value
type readerValue struct {
	value    *string
	typename string
}

// NewReaderValue creates a pflag Value naming an input file.  Setting the
// value checks that the file can be opened; "-" names stdin.
func NewReaderValue(def string, p *string, typename string) pflag.Value {
	rv := &readerValue{
		value:    p,
		typename: typename,
	}
	*rv.value = def

	return rv
}

func (r *readerValue) Set(val string) error {
	if val != "-" {
		f, err := os.Open(val)
		if err != nil {
			return err
		}

		if err := f.Close(); err != nil {
			return err
		}
	}

	*r.value = val

	return nil
}

func (r *readerValue) Type() string {
	return r.typename
}

func (r *readerValue) String() string {
	if r.value == nil {
		return ""
	}

	return *r.value
}
