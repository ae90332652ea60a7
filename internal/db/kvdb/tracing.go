// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package kvdb

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("github.com/nextrip/core/internal/db/kvdb")
