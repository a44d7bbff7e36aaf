package status

// Status codes for API responses
// 1000-1999: Success codes
// 2000-2999: Challenge/Verification codes
// 4000-4999: Client error codes
// 5000-5999: Server error codes

const (
	// Success codes (1000-1999)
	StatusOK                int16 = 1000
	StatusCreated           int16 = 1001
	StatusAccepted          int16 = 1002
	StatusUpdated           int16 = 1003
	StatusDeleted           int16 = 1004
	StatusLoginSuccess      int16 = 1010
	StatusSignupSuccess     int16 = 1011
	StatusTokenRefreshed    int16 = 1012
	StatusLogoutSuccess     int16 = 1013
	StatusPasswordChanged   int16 = 1014
	StatusEmailVerified     int16 = 1015
	StatusFileUploaded      int16 = 1030
	StatusAvatarActivated   int16 = 1031
	StatusLinksReordered    int16 = 1040
	StatusEventRecorded     int16 = 1050
	StatusProfileRepaired   int16 = 1060
	StatusProfileConsistent int16 = 1061

	// Challenge codes (2000-2999)
	StatusChallengeIssued       int16 = 2000
	StatusEmailVerificationSent int16 = 2002
	StatusPasswordResetIssued   int16 = 2003

	// Client error codes (4000-4999)
	StatusBadRequest          int16 = 4000
	StatusUnauthorized        int16 = 4001
	StatusForbidden           int16 = 4002
	StatusNotFound            int16 = 4003
	StatusConflict            int16 = 4004
	StatusTooManyRequests     int16 = 4005
	StatusValidationFailed    int16 = 4010
	StatusInvalidCredentials  int16 = 4011
	StatusInvalidToken        int16 = 4012
	StatusTokenExpired        int16 = 4013
	StatusInvalidEmail        int16 = 4020
	StatusEmailAlreadyExists  int16 = 4021
	StatusWeakPassword        int16 = 4022
	StatusUsernameTaken       int16 = 4024
	StatusCSRFTokenMismatch   int16 = 4040
	StatusSessionExpired      int16 = 4051
	StatusInvalidSession      int16 = 4052
	StatusFileTooLarge        int16 = 4060
	StatusUnsupportedFileType int16 = 4061
	StatusProfileIncomplete   int16 = 4070

	// Server error codes (5000-5999)
	StatusInternalServerError  int16 = 5000
	StatusNotImplemented       int16 = 5001
	StatusServiceUnavailable   int16 = 5002
	StatusDBError              int16 = 5010
	StatusRedisError           int16 = 5011
	StatusJWTError             int16 = 5030
	StatusStorageError         int16 = 5040
	StatusExternalServiceError int16 = 5050
	StatusRepairFailed         int16 = 5060
)

// CodeToString returns a descriptive string for the status code
func CodeToString(code int16) string {
	switch code {
	// Success codes
	case StatusOK:
		return "OK"
	case StatusCreated:
		return "Resource created successfully"
	case StatusAccepted:
		return "Request accepted for processing"
	case StatusUpdated:
		return "Resource updated successfully"
	case StatusDeleted:
		return "Resource deleted successfully"
	case StatusLoginSuccess:
		return "Login successful"
	case StatusSignupSuccess:
		return "Signup successful"
	case StatusTokenRefreshed:
		return "Token refreshed successfully"
	case StatusLogoutSuccess:
		return "Logout successful"
	case StatusFileUploaded:
		return "File uploaded successfully"
	case StatusAvatarActivated:
		return "Avatar activated"
	case StatusLinksReordered:
		return "Links reordered"
	case StatusEventRecorded:
		return "Event recorded"
	case StatusProfileRepaired:
		return "Profile repaired"
	case StatusProfileConsistent:
		return "Profile is consistent"

	// Challenge codes
	case StatusChallengeIssued:
		return "Challenge issued"
	case StatusEmailVerificationSent:
		return "Email verification sent"

	// Client error codes
	case StatusBadRequest:
		return "Bad request"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusForbidden:
		return "Forbidden"
	case StatusNotFound:
		return "Resource not found"
	case StatusConflict:
		return "Resource conflict"
	case StatusInvalidCredentials:
		return "Invalid credentials"
	case StatusTokenExpired:
		return "Token has expired"
	case StatusUsernameTaken:
		return "Username already taken"
	case StatusFileTooLarge:
		return "File exceeds the size limit"
	case StatusUnsupportedFileType:
		return "Unsupported file type"
	case StatusProfileIncomplete:
		return "Profile records are incomplete"

	// Server error codes
	case StatusInternalServerError:
		return "Internal server error"
	case StatusNotImplemented:
		return "Not implemented"
	case StatusServiceUnavailable:
		return "Service unavailable"
	case StatusDBError:
		return "Database error"
	case StatusStorageError:
		return "Blob storage error"
	case StatusRepairFailed:
		return "Profile repair failed"

	default:
		return "Unknown status code"
	}
}

// IsSuccess returns true if the code is a success code
func IsSuccess(code int16) bool {
	return code >= 1000 && code < 2000
}

// IsChallenge returns true if the code is a challenge code
func IsChallenge(code int16) bool {
	return code >= 2000 && code < 3000
}

// IsClientError returns true if the code is a client error code
func IsClientError(code int16) bool {
	return code >= 4000 && code < 5000
}

// IsServerError returns true if the code is a server error code
func IsServerError(code int16) bool {
	return code >= 5000 && code < 6000
}
