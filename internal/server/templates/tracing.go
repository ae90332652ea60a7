// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package templates

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("github.com/nextrip/core/internal/server/templates")
