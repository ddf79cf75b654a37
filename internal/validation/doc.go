// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

// Package validation wraps go-playground/validator with a singleton
// instance and readable, json-named error messages.
//
//	if err := validation.ValidateStruct(&tr); err != nil {
//	    writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
//	    return
//	}
package validation
