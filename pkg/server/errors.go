// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
)

// HTTPStatusFromCode maps an error code to its HTTP status. Unknown codes
// map to 500.
func HTTPStatusFromCode(code stackerrors.ErrorCode) int {
	switch code {
	case stackerrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case stackerrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case stackerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case stackerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case stackerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case stackerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case stackerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// retryableFromCode reports whether a client may retry after an error.
func retryableFromCode(code stackerrors.ErrorCode) bool {
	switch code {
	case stackerrors.ErrCodeTimeout,
		stackerrors.ErrCodeUnavailable,
		stackerrors.ErrCodeRateLimitExceeded,
		stackerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns the union of a and b, b winning on conflicts, or nil
// when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// WriteError writes a JSON ErrorResponse carrying the request ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code stackerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes err as an ErrorResponse. Structured errors keep
// their code, message and context; anything else becomes an INTERNAL error
// with fallbackMessage. The cause, if any, is reported under "error".
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	var se *stackerrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(extraDetails, map[string]any{"error": err.Error()})
	WriteError(w, r, http.StatusInternalServerError, stackerrors.ErrCodeInternal, fallbackMessage,
		retryableFromCode(stackerrors.ErrCodeInternal), details)
}
