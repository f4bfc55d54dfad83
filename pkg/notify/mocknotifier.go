package notify

// MockNotifier records sent notices for tests.
type MockNotifier struct {
	SentNotices []Notice
}

func (m *MockNotifier) Send(noticeType NoticeType, notice Notice) error {
	m.SentNotices = append(m.SentNotices, notice)
	return nil
}
