package models

// All lists every model migrated at startup.
func All() []interface{} {
	return []interface{}{&User{}, &Project{}, &Task{}, &Notification{}}
}
