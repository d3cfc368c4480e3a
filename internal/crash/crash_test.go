/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	applog "kinzaquest/internal/log"
)

func TestMain(m *testing.M) {
	applog.Init(applog.Options{Level: "error", Console: io.Discard})
	os.Exit(m.Run())
}

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport("", "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Kinza Quest Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
	if strings.Contains(s, "SaveDir:") {
		t.Fatalf("no save dir expected: %s", s)
	}
}

func TestWriteReportCreatesFileInSaveDir(t *testing.T) {
	dir := t.TempDir()
	path, err := writeReport(dir, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(dir, ReportDirName) {
		t.Fatalf("expected crash report under %s, got %s", ReportDirName, path)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "SaveDir: "+dir) {
		t.Fatalf("save dir missing from report: %s", b)
	}
}
