// Copyright (C) 2025, VigilantDoomer
//
// This file is part of CastleCrush program.
//
// CastleCrush is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// CastleCrush is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CastleCrush.  If not, see <https://www.gnu.org/licenses/>.

// Central log (stdout/stderr) of the program
package castlecrush

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/ttacon/chalk"
)

type MyLogger struct {
	// status dumps go here, not to stdout, they are huge
	dumps bytes.Buffer
	// Mutex is used to order writes to stdout and stderr, as well as Sync call
	mu     sync.Mutex
	syslog *log.Logger
	errlog *log.Logger
}

// Log of one task (one level generated, one sweep run on behalf of someone).
// Buffered until merged into main log, or discarded if the task result is
// thrown away anyway (level generator discards a lot of attempts)
type MiniLogger struct {
	buf   bytes.Buffer
	dumps bytes.Buffer
}

func CreateLogger() *MyLogger {
	return &MyLogger{
		syslog: log.New(os.Stdout, "", 0),
		errlog: log.New(os.Stderr, "", 0),
	}
}

var Log = CreateLogger()

// Redirect is for the command line tool that wants the log in a file (and for
// tests). Either writer may be nil to leave it as it was
func (log *MyLogger) Redirect(stdout, stderr io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if stdout != nil {
		log.syslog.SetOutput(stdout)
	}
	if stderr != nil {
		log.errlog.SetOutput(stderr)
	}
}

// Your generic printf to let user see things
func (log *MyLogger) Printf(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.syslog.Printf(s, a...)
}

// As generic as printf, but writes to stderr instead of stdout
// Does NOT interrupt execution of the program
func (log *MyLogger) Error(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	msg := fmt.Sprintf(s, a...)
	if config.ColorErrors {
		msg = chalk.Red.Color(msg)
	}
	log.errlog.Print(msg)
}

// Stuff one might want to see only when really bothering to read it
func (log *MyLogger) Verbose(verbosityLevel int, s string, a ...interface{}) {
	if verbosityLevel <= config.VerbosityLevel {
		log.mu.Lock()
		defer log.mu.Unlock()
		log.syslog.Printf(s, a...)
	}
}

// Panicking is not a good thing, but at least we can now use formatted printing
// for it
func (log *MyLogger) Panic(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	panic(fmt.Sprintf(s, a...))
}

// DumpStatus stores a spew dump of status entries, left to right, if
// config.DumpStatus is on
func (log *MyLogger) DumpStatus(caption string, entries []*StatusEntry) {
	if !config.DumpStatus {
		return
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	writeStatusDump(&log.dumps, caption, entries)
}

func (log *MyLogger) GetDumpedStatus() string {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.dumps.String()
}

// Sync is used to wait until all messages are written to the output
func (log *MyLogger) Sync() {
	log.mu.Lock()
	log.mu.Unlock()
}

func (log *MyLogger) Merge(mlog *MiniLogger, preface string) {
	if mlog == nil {
		return
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	if len(preface) > 0 {
		log.syslog.Print(preface)
	}
	content := mlog.buf.String()
	if len(content) > 0 {
		log.syslog.Print(content)
	}
	if mlog.dumps.Len() > 0 {
		log.dumps.Write(mlog.dumps.Bytes())
	}
}

func writeStatusDump(w *bytes.Buffer, caption string, entries []*StatusEntry) {
	w.WriteString(caption)
	w.WriteString("\n")
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true,
		DisableMethods: true, MaxDepth: 2}
	for _, e := range entries {
		w.WriteString(fmt.Sprintf("  #%d ", e.Index))
		cfg.Fdump(w, e.Segment)
	}
}

func CreateMiniLogger() *MiniLogger {
	return new(MiniLogger)
}

// All MiniLogger methods are nil-safe: nil MiniLogger forwards to Log

func (mlog *MiniLogger) Verbose(verbosityLevel int, s string, a ...interface{}) {
	if mlog == nil {
		Log.Verbose(verbosityLevel, s, a...)
		return
	}
	if verbosityLevel <= config.VerbosityLevel {
		mlog.buf.WriteString(fmt.Sprintf(s, a...))
	}
}

func (mlog *MiniLogger) DumpStatus(caption string, entries []*StatusEntry) {
	if mlog == nil {
		Log.DumpStatus(caption, entries)
		return
	}
	if !config.DumpStatus {
		return
	}
	writeStatusDump(&mlog.dumps, caption, entries)
}

func (mlog *MiniLogger) String() string {
	if mlog == nil {
		return ""
	}
	return mlog.buf.String()
}
