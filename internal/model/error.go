// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package model

type ErrorReason int

const (
	ErrorReasonBackend ErrorReason = iota
	ErrorReasonProtocol
	ErrorReasonValidation
)
