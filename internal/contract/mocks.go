package contract

import (
	"context"

	"github.com/cadencehq/cadence/schema"
	"github.com/stretchr/testify/mock"
)

// MockEventFeed is a testify mock for the EventFeed interface.
type MockEventFeed struct {
	mock.Mock
}

var _ EventFeed = &MockEventFeed{} // Compile-time check

// Fetch mocks the EventFeed.Fetch method.
func (m *MockEventFeed) Fetch(ctx context.Context) ([]schema.SourceEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.SourceEvent), args.Error(1)
}

// Kind mocks the EventFeed.Kind method.
func (m *MockEventFeed) Kind() schema.SourceKind {
	args := m.Called()
	return args.Get(0).(schema.SourceKind)
}

// MockMeetingStore is a testify mock for the MeetingStore interface.
type MockMeetingStore struct {
	mock.Mock
}

var _ MeetingStore = &MockMeetingStore{} // Compile-time check

// ExternalIDSnapshot mocks the MeetingStore.ExternalIDSnapshot method.
func (m *MockMeetingStore) ExternalIDSnapshot(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

// AppendMeeting mocks the MeetingStore.AppendMeeting method.
func (m *MockMeetingStore) AppendMeeting(ctx context.Context, rec schema.MeetingRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// ListMeetings mocks the MeetingStore.ListMeetings method.
func (m *MockMeetingStore) ListMeetings(ctx context.Context) ([]schema.MeetingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.MeetingRecord), args.Error(1)
}

// MockContactDirectory is a testify mock for the ContactDirectory interface.
type MockContactDirectory struct {
	mock.Mock
}

var _ ContactDirectory = &MockContactDirectory{} // Compile-time check

// ListContacts mocks the ContactDirectory.ListContacts method.
func (m *MockContactDirectory) ListContacts(ctx context.Context) ([]schema.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.Contact), args.Error(1)
}

// AddContact mocks the ContactDirectory.AddContact method.
func (m *MockContactDirectory) AddContact(ctx context.Context, c schema.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
