// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package templates

import "github.com/nextrip/core/internal/model"

// errorMessage maps an error reason to the inline message shown on the
// planning form.
func errorMessage(reason model.ErrorReason) string {
	switch reason {
	case model.ErrorReasonValidation:
		return "Choisissez au moins une ville et un budget."
	case model.ErrorReasonProtocol:
		return "Réponse inattendue du service de planification."
	default:
		return "Le service de planification est indisponible, réessayez."
	}
}
