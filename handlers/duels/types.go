package duels

// Error codes returned in the JSON error body
const (
	CodeInvalidClientID       = "INVALID_CLIENT_ID"
	CodeInvalidLevel          = "INVALID_LEVEL"
	CodeInvalidRoomCode       = "INVALID_ROOM_CODE"
	CodeInvalidRole           = "INVALID_ROLE"
	CodeRoomNotFound          = "ROOM_NOT_FOUND"
	CodeRoomNotWaiting        = "ROOM_NOT_WAITING"
	CodeRoomFull              = "ROOM_FULL"
	CodeRoomNoLongerAvailable = "ROOM_NO_LONGER_AVAILABLE"
	CodeFailedToCreateRoom    = "FAILED_TO_CREATE_ROOM"
	CodeFailedToGenerateCode  = "FAILED_TO_GENERATE_CODE"
	CodeFailedToSubmitResult  = "FAILED_TO_SUBMIT_RESULT"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeDBError               = "DB_ERROR"
)

// CreateRoomRequest is the body for opening a new duel room
type CreateRoomRequest struct {
	ClientID    string `json:"client_id" binding:"required"`
	WorldID     int    `json:"world_id" binding:"required"`
	LevelNumber int    `json:"level_number" binding:"required"`
}

// JoinRoomRequest is the body for claiming the guest slot
type JoinRoomRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

// SubmitResultRequest carries one side's finished run
type SubmitResultRequest struct {
	Role       string `json:"role" binding:"required"`
	Win        bool   `json:"win"`
	TimeMs     int64  `json:"time_ms"`
	Moves      int    `json:"moves"`
	PairsFound int    `json:"pairs_found"`
}

// CancelRoomRequest identifies which participant is cancelling
type CancelRoomRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}
