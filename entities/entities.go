package entities

type (
	// User represents an user of the system.
	// They are created by the authentication service.
	User struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	}

	// NodeInfo represents the repository metadata of a node at request
	// time. It is a read-only view; only the repository mutates it.
	NodeInfo struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Size      int64  `json:"size"`
		MimeType  string `json:"mime_type"`
		CreatedBy string `json:"created_by"`
		// Modified is the last modification instant in milliseconds
		// since the Unix epoch.
		Modified int64 `json:"modified"`
	}
)
