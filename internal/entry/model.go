package entry

// Entry is one recorded sleep session. Start and End are Unix-millisecond
// timestamps; the JSON field names and the numeric timestamps are load-bearing
// because the serialized form is embedded verbatim in analytics prompts.
type Entry struct {
	ID     string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(36);index;not null" json:"userId"`
	Start  int64  `gorm:"column:start_time;not null" json:"start"`
	End    int64  `gorm:"column:end_time;not null" json:"end"`
	Rate   int    `gorm:"not null" json:"rate"`
	Notes  string `gorm:"type:text;not null" json:"notes"`
}

func (Entry) TableName() string { return "entry" }
