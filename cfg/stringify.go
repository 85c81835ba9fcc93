// Copyright 2024 Google Inc. All Rights Reserved.
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

package cfg

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Octal is the datatype for params such as mkdir-mode which accept a
// base-8 value.
type Octal int

func (o *Octal) UnmarshalText(text []byte) error {
	v, err := strconv.ParseInt(string(text) /*base=*/, 8 /*bitSize=*/, 32)
	if err != nil {
		return err
	}
	*o = Octal(v)
	return nil
}

func (o *Octal) String() string {
	return fmt.Sprintf("%o", *o)
}

// LogSeverity represents the logging severity and can accept the following
// values: "TRACE", "DEBUG", "INFO", "WARNING", "ERROR", "OFF".
type LogSeverity string

var severityRanking = map[LogSeverity]int{
	LogSeverity(TRACE):   0,
	LogSeverity(DEBUG):   1,
	LogSeverity(INFO):    2,
	LogSeverity(WARNING): 3,
	LogSeverity(ERROR):   4,
	LogSeverity(OFF):     5,
}

// Rank returns an integer ordering of severities from most (TRACE) to least
// (OFF) verbose, used by the logger to decide whether to emit a record.
func (l LogSeverity) Rank() int {
	return severityRanking[l]
}

func (l *LogSeverity) UnmarshalText(text []byte) error {
	textStr := string(text)
	level := strings.ToUpper(textStr)
	v := []string{"TRACE", "DEBUG", "INFO", "WARNING", "ERROR", "OFF"}
	if !slices.Contains(v, level) {
		return fmt.Errorf("invalid logseverity value: %s. It can only assume values in the list: %v", textStr, v)
	}
	*l = LogSeverity(level)
	return nil
}

// ResolvedPath represents a file-path which is resolved to an absolute path
// at decode time, with a leading "~" expanded to the user's home directory.
type ResolvedPath string

func (p *ResolvedPath) UnmarshalText(text []byte) error {
	path, err := resolvePath(string(text))
	if err != nil {
		return err
	}
	*p = ResolvedPath(path)
	return nil
}
