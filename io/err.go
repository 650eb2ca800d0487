package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Console errors
	ErrTapeMissing = errors.New(f("tape output missing"))
)
