package timing

import "time"

// TimeService 提供当前时间，便于测试中注入固定时钟
type TimeService interface {
	Now() time.Time
	Today() time.Time
}

// SystemTimeService 使用系统时钟
type SystemTimeService struct{}

func NewSystemTimeService() *SystemTimeService {
	return &SystemTimeService{}
}

func (s *SystemTimeService) Now() time.Time {
	return time.Now()
}

// Today 返回当天零点
func (s *SystemTimeService) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// FixedTimeService 返回固定时间，测试用
type FixedTimeService struct {
	Time time.Time
}

func NewFixedTimeService(t time.Time) *FixedTimeService {
	return &FixedTimeService{Time: t}
}

func (s *FixedTimeService) Now() time.Time {
	return s.Time
}

func (s *FixedTimeService) Today() time.Time {
	t := s.Time
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
