package postgres

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Users       *UserRepository
	TOTPSecrets *TOTPSecretRepository
	Venues      *VenueRepository
	Events      *EventRepository
	Tags        *TagRepository
	Messages    *MessageRepository
}

// NewRepositories wires all repositories backed by the provided executor.
func NewRepositories(exec pgExecutor) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(exec),
		TOTPSecrets: NewTOTPSecretRepository(exec),
		Venues:      NewVenueRepository(exec),
		Events:      NewEventRepository(exec),
		Tags:        NewTagRepository(exec),
		Messages:    NewMessageRepository(exec),
	}
}
