// Package verrors defines the stable error codes shared by all vhash
// commands. The codes double as process exit codes, so their ordinals
// must never change.
package verrors

import "errors"

type Code int

const (
	OutOfRange Code = -500 + iota
	MkDir
	OpenFile
	DecodeImage
	ReadFile
	InitDb
	InsertDb
	DeleteDb
	ClearDb
	PruneDb
	NotExists
	UnknownType
	ParamInvalid
	MakeThumb
)

var names = map[Code]string{
	OutOfRange:   "out of range",
	MkDir:        "mkdir failed",
	OpenFile:     "open file failed",
	DecodeImage:  "decode image failed",
	ReadFile:     "read file failed",
	InitDb:       "init db failed",
	InsertDb:     "insert db failed",
	DeleteDb:     "delete db failed",
	ClearDb:      "clear db failed",
	PruneDb:      "prune db failed",
	NotExists:    "path not exists",
	UnknownType:  "unknown file type",
	ParamInvalid: "invalid parameter",
	MakeThumb:    "make thumbnail failed",
}

func (c Code) Error() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "unknown error"
}

// ExitCode maps err to the process exit code: 0 for nil, the stable
// ordinal when a Code is anywhere in the chain, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var c Code
	if errors.As(err, &c) {
		return int(c)
	}
	return 1
}
