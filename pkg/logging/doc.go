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

// Package logging provides structured logging utilities for backbar.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults:
// JSON records on stderr, module and version attributes on every record, and
// source locations when running at debug level. Results printed by the
// optimizer go to stdout, so logs never interleave with the report.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: per-count model sizes, intermediate solver bounds, source location
//   - INFO: sweep start/finish, files written (default)
//   - WARN/WARNING: monotonicity violations, unproven optima
//   - ERROR: fatal load or solve errors
//
// # Usage
//
//	logging.SetDefaultStructuredLoggerWithLevel("backbar", version, "debug")
//	slog.Info("sweep complete", "counts", 69)
//
// If no level is given, LOG_LEVEL is consulted, and INFO is the default.
package logging
