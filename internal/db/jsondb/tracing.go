// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package jsondb

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("github.com/nextrip/core/internal/db/jsondb")
