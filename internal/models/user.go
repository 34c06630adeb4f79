package models

// Exercise is one log entry embedded in a User document.
// Date is stored as a day string, e.g. "Mon Jan 01 2024".
type Exercise struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// User is the single collection's document. Count always mirrors len(Log);
// it is recomputed on every append and never taken from the client.
type User struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []Exercise `json:"log"`
}

// UserRef is the id+username projection returned by the users listing
// and by user creation.
type UserRef struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// LogResult is the shape returned by the log query. From/To echo the
// normalized day strings of the requested bounds and are omitted when
// the caller did not supply them.
type LogResult struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	From     string     `json:"from,omitempty"`
	To       string     `json:"to,omitempty"`
	Count    int        `json:"count"`
	Log      []Exercise `json:"log"`
}
