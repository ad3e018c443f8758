package profiler

import (
	"fmt"
	"runtime"
)

// CallSite is a call-site identity: (filePath, lineNumber,
// functionName, sectionName?). Two sections at the same call site
// with different section names are distinct identities (spec §3).
type CallSite struct {
	FilePath    string
	Line        int
	FuncName    string
	SectionName string
	HasSection  bool
}

// ID returns the string form filePath|lineNumber|functionName[|sectionName].
func (c CallSite) ID() string {
	if c.HasSection {
		return fmt.Sprintf("%s|%d|%s|%s", c.FilePath, c.Line, c.FuncName, c.SectionName)
	}
	return fmt.Sprintf("%s|%d|%s", c.FilePath, c.Line, c.FuncName)
}

// captureCallSite walks the stack skip frames up from its own caller
// to find the true call site of begin/end/section, per spec §4.G
// ("captured at the source line of the begin/end/section call, not at
// the facade's implementation line").
func captureCallSite(skip int, sectionName string, hasSection bool) CallSite {
	pc, file, line, ok := runtime.Caller(skip)
	funcName := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			funcName = fn.Name()
		}
	} else {
		file = "unknown"
	}
	return CallSite{FilePath: file, Line: line, FuncName: funcName, SectionName: sectionName, HasSection: hasSection}
}
