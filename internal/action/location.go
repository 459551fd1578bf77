package action

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
)

// funcLocation returns the definition site of a func value.
func funcLocation(v reflect.Value) string {
	pc := v.Pointer()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	file, line := fn.FileLine(fn.Entry())
	return FormatLocation(file, line)
}

// callerLocation returns the location skip frames above its caller.
func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return FormatLocation(file, line)
}

// FormatLocation renders file:line with file relative to the working directory
// when it lives below it.
func FormatLocation(file string, line int) string {
	if file == "" {
		return ""
	}
	file = relativePath(file)
	if line <= 0 {
		return file
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func relativePath(file string) string {
	wd, err := os.Getwd()
	if err != nil {
		return file
	}
	rel, err := filepath.Rel(wd, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return file
	}
	return filepath.ToSlash(rel)
}
