package employee

type CreatedEvent struct {
	Data Fields
}

type UpdatedEvent struct {
	ID   string
	Data Fields
}

type DeletedEvent struct {
	ID string
}
