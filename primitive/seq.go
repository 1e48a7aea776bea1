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

package primitive

import (
	"iter"

	"golang.org/x/exp/constraints"

	"m4o.io/osmpbf/model"
)

// producer is a single-pass state machine over the records of a group.
type producer[T any] interface {
	// next returns the next element, or false once the records are
	// exhausted.
	next() (T, bool)
}

// sequence adapts a producer factory to an iter.Seq.  Every range starts a
// fresh producer.
func sequence[T any](start func() producer[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		p := start()

		for {
			v, ok := p.next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// concat yields the elements of each sequence in turn.
func concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// objects widens a sequence of nodes, ways or relations to model.Object.
func objects[T model.Object](seq iter.Seq[T]) iter.Seq[model.Object] {
	return func(yield func(model.Object) bool) {
		for v := range seq {
			if !yield(v) {
				return
			}
		}
	}
}

// delta is the running sum of a delta-coded column.
type delta[T constraints.Integer] struct {
	sum T
}

// add accumulates d and returns the decoded value.
func (a *delta[T]) add(d T) T {
	a.sum += d

	return a.sum
}
