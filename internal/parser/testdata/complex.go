package testdata

import "github.com/alexhholmes/segbuf"

// @segments elem=int32 bogus=1
type BadParam struct {
	A segbuf.Tag
}

// @segments elem=int32
type BadCount struct {
	A segbuf.Tag `segment:"count=-4"`
}

// @segments elem=int32
type NotStruct int
