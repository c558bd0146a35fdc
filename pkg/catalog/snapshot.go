// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package catalog

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/backbar/pkg/errors"
	"github.com/NVIDIA/backbar/pkg/serializer"
)

// WriteSnapshot overwrites path with the drink list.
func WriteSnapshot(ctx context.Context, path string, format serializer.Format, drinks []Drink) error {
	if format == "" {
		format = serializer.FormatFromPath(path)
	}
	if format == serializer.FormatTable {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"table format cannot be used for the drink snapshot",
			map[string]any{"path": path})
	}

	w, err := serializer.NewFileWriter(format, path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create drink snapshot", err)
	}

	if drinks == nil {
		drinks = []Drink{}
	}
	if err := w.Serialize(ctx, drinks); err != nil {
		w.Close()
		return errors.Wrap(errors.ErrCodeInternal, "failed to write drink snapshot", err)
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to close drink snapshot", err)
	}

	slog.Debug("drink snapshot written", "path", path, "format", format, "drinks", len(drinks))
	return nil
}

// ReadSnapshot loads a drink list previously written by WriteSnapshot.
func ReadSnapshot(path string) ([]Drink, error) {
	drinks, err := serializer.FromFile[[]Drink](path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to read drink snapshot", err,
			map[string]any{"path": path})
	}
	return *drinks, nil
}
