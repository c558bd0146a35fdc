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

// Package serializer reads and writes backbar documents.
//
// Supported formats:
//   - JSON: indented, the format of the drink snapshot
//   - YAML: human-readable alternative for snapshots and sweep results
//   - Table: write-only columnar output for terminals
//
// Usage:
//
//	w, err := serializer.NewFileWriter(serializer.FormatJSON, "index.json")
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	return w.Serialize(ctx, drinks)
//
// Reading a document back:
//
//	sweep, err := serializer.FromFile[optimizer.Sweep]("sweep.yaml")
package serializer
