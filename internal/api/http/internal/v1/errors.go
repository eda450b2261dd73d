package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	TourNotFoundCode          = 2001
	TourNotFoundMessage       = "tour not found"
	ImportRejectedCode        = 2002
	ImportRejectedMessage     = "import data rejected"
	StorageUnavailableCode    = 2003
	StorageUnavailableMessage = "object storage is not configured"
	UploadTooLargeCode        = 2004
	UploadTooLargeMessage     = "uploaded file exceeds the size limit"
	UploadFileMissingCode     = 2005
	UploadFileMissingMessage  = "multipart field \"file\" is required"
	ExportFailedCode          = 2006
	ExportFailedMessage       = "export failed"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int      `json:"error_code"`
	ErrorMessage string   `json:"error_message"`
	Fields       []string `json:"fields"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case TourNotFoundCode:
		errorStruct.ErrorCode = TourNotFoundCode
		errorStruct.ErrorMessage = TourNotFoundMessage
	case ImportRejectedCode:
		errorStruct.ErrorCode = ImportRejectedCode
		errorStruct.ErrorMessage = ImportRejectedMessage
	case StorageUnavailableCode:
		errorStruct.ErrorCode = StorageUnavailableCode
		errorStruct.ErrorMessage = StorageUnavailableMessage
	case UploadTooLargeCode:
		errorStruct.ErrorCode = UploadTooLargeCode
		errorStruct.ErrorMessage = UploadTooLargeMessage
	case UploadFileMissingCode:
		errorStruct.ErrorCode = UploadFileMissingCode
		errorStruct.ErrorMessage = UploadFileMissingMessage
	case ExportFailedCode:
		errorStruct.ErrorCode = ExportFailedCode
		errorStruct.ErrorMessage = ExportFailedMessage
	}

	return errorStruct
}
