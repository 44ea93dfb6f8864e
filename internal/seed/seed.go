// Package seed writes the demo data set used for local runs and demos.
// Every key is only written when it does not exist yet.
package seed

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/service"
	"hr-portal/internal/store"
)

const demoPassword = "1234"

type Stores struct {
	Users      *store.UserStore
	Attendance *store.AttendanceStore
	Tasks      *store.TaskStore
	Messages   *store.MessageStore
	Chat       *store.ChatStore
}

// Run seeds every store relative to now.
func Run(ctx context.Context, st Stores, now time.Time) error {
	steps := []struct {
		name string
		fn   func() (bool, error)
	}{
		{"accounts", func() (bool, error) { return seedAccounts(ctx, st.Users) }},
		{"attendance", func() (bool, error) {
			return st.Attendance.SeedIfAbsent(ctx, func() []model.AttendanceRecord { return Attendance(now) })
		}},
		{"tasks", func() (bool, error) { return st.Tasks.SeedIfAbsent(ctx, Tasks) }},
		{"messages", func() (bool, error) {
			return st.Messages.SeedIfAbsent(ctx, func() []model.Message { return Messages(now) })
		}},
		{"chat", func() (bool, error) {
			rooms, msgs := Chat()
			return st.Chat.SeedIfAbsent(ctx, rooms, msgs)
		}},
	}
	for _, s := range steps {
		wrote, err := s.fn()
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.name, err)
		}
		if wrote {
			log.Printf("seed: wrote demo %s", s.name)
		}
	}
	return nil
}

func seedAccounts(ctx context.Context, users *store.UserStore) (bool, error) {
	exists, err := users.Exists(ctx)
	if err != nil || exists {
		return false, err
	}
	hash, err := service.HashPassword(demoPassword)
	if err != nil {
		return false, err
	}
	return users.SeedIfAbsent(ctx, func() []model.Account {
		demo := Users()
		accts := make([]model.Account, 0, len(demo))
		for _, u := range demo {
			accts = append(accts, model.Account{User: u, PasswordHash: hash})
		}
		return accts
	})
}

func worker(id, name, dept, position, disability, joinDate string) model.User {
	return model.User{
		ID: id, Username: id, Role: model.RoleWorker, Name: name,
		Company: "테크 컴퍼니", Department: dept, Position: position,
		Worker: &model.WorkerProfile{Disability: disability, JoinDate: joinDate},
	}
}

func company(id, name, dept, position string) model.User {
	return model.User{
		ID: id, Username: id, Role: model.RoleCompany, Name: name,
		Company: "테크 컴퍼니", Department: dept, Position: position,
	}
}

// Users returns the demo directory. All demo accounts share one password.
func Users() []model.User {
	return []model.User{
		worker("test01", "김근로", "개발팀", "사원", "시각장애", "2024-01-15"),
		company("test02", "박인사", "인사팀", "팀장"),
		company("company1", "테스트기업회원", "인사팀", "매니저"),
		worker("worker001", "이개발", "개발팀", "대리", "지체장애", "2023-06-01"),
		worker("worker002", "박디자인", "디자인팀", "사원", "청각장애", "2024-02-01"),
		worker("worker003", "최마케팅", "마케팅팀", "대리", "시각장애", "2023-09-15"),
		worker("worker004", "정운영", "운영팀", "사원", "지체장애", "2024-01-01"),
	}
}

var employees = []struct{ id, name string }{
	{"emp001", "김철수"}, {"emp002", "이영희"}, {"emp003", "박민수"}, {"emp004", "정수진"},
	{"emp005", "최동현"}, {"emp006", "한미영"}, {"emp007", "윤태호"}, {"emp008", "강지은"},
	{"emp009", "임성민"}, {"emp010", "조현우"}, {"emp011", "서나연"}, {"emp012", "배준호"},
	{"emp013", "오지현"}, {"emp014", "신동욱"}, {"emp015", "홍서영"},
}

// attendanceDays describes today and the four days before it. Statuses are
// P(resent), L(ate), A(bsent) and V (leave), one letter per employee.
var attendanceDays = []struct {
	statuses            string
	onTimeIn, onTimeOut string
	lateIn, lateOut     string
}{
	{"PLAVPLAVPLAVPLA", "08:45", "18:00", "09:15", "18:15"},
	{"PPLPAPPLPPVPPPP", "08:50", "18:05", "09:20", "18:20"},
	{"PPPLPPAPPLPPPPP", "08:55", "18:00", "09:10", "18:10"},
	{"PLPPPPPPVPPPLPP", "08:40", "17:55", "09:25", "18:25"},
	{"PPPPLPPPPPAPPPP", "08:50", "18:00", "09:05", "18:05"},
}

// Attendance generates five days of records for fifteen employees.
func Attendance(now time.Time) []model.AttendanceRecord {
	records := make([]model.AttendanceRecord, 0, len(employees)*len(attendanceDays))
	for offset, day := range attendanceDays {
		date := now.AddDate(0, 0, -offset).Format(time.DateOnly)
		for i, emp := range employees {
			r := model.AttendanceRecord{
				ID:       model.AttendanceID(emp.id, date),
				UserID:   emp.id,
				UserName: emp.name,
				Date:     date,
			}
			switch day.statuses[i] {
			case 'A':
				r.Status = model.AttendanceStatusAbsent
			case 'V':
				r.Status = model.AttendanceStatusLeave
			case 'L':
				r.Status = model.AttendanceStatusLate
				r.CheckIn, r.CheckOut = day.lateIn, day.lateOut
			default:
				r.Status = model.AttendanceStatusPresent
				r.CheckIn, r.CheckOut = day.onTimeIn, day.onTimeOut
			}
			if r.CheckIn != "" {
				h := hoursBetween(r.CheckIn, r.CheckOut)
				r.WorkHours = &h
			}
			records = append(records, r)
		}
	}
	return records
}

func hoursBetween(in, out string) float64 {
	a, _ := time.Parse("15:04", in)
	b, _ := time.Parse("15:04", out)
	return math.Round(b.Sub(a).Hours()*100) / 100
}

func Tasks() []model.Task {
	task := func(n int, title, desc string, p model.TaskPriority, s model.TaskStatus, due, created string) model.Task {
		createdAt, _ := time.Parse(time.RFC3339, created)
		return model.Task{
			ID:             fmt.Sprintf("task-%d", n),
			AssignedTo:     "test01",
			AssignedToName: "김근로",
			AssignedBy:     "test02",
			AssignedByName: "박인사",
			Title:          title,
			Description:    desc,
			Priority:       p,
			Status:         s,
			DueDate:        due,
			CreatedAt:      createdAt,
		}
	}
	return []model.Task{
		task(1, "웹사이트 UI 개선 작업", "메인 페이지의 사용자 인터페이스와 접근성을 개선합니다.", model.TaskPriorityHigh, model.TaskStatusPending, "2024-01-25", "2024-01-15T09:00:00Z"),
		task(2, "데이터베이스 정리", "사용하지 않는 데이터를 정리하고 성능을 최적화합니다.", model.TaskPriorityMedium, model.TaskStatusInProgress, "2024-01-30", "2024-01-10T14:30:00Z"),
		task(3, "문서화 작업", "사용자 매뉴얼과 API 문서를 업데이트합니다.", model.TaskPriorityLow, model.TaskStatusCompleted, "2024-01-20", "2024-01-05T11:15:00Z"),
		task(4, "보안 점검 및 업데이트", "보안 취약점을 점검하고 패치를 적용합니다.", model.TaskPriorityHigh, model.TaskStatusPending, "2024-01-28", "2024-01-12T16:45:00Z"),
		task(5, "성능 모니터링 도구 설정", "모니터링 도구와 대시보드를 구성합니다.", model.TaskPriorityMedium, model.TaskStatusInProgress, "2024-02-05", "2024-01-08T10:20:00Z"),
		task(6, "코드 리뷰 및 리팩토링", "중복 코드를 제거하고 품질을 개선합니다.", model.TaskPriorityMedium, model.TaskStatusPending, "2024-02-10", "2024-01-14T13:30:00Z"),
		task(7, "사용자 피드백 분석", "수집된 피드백을 분석해 개선사항을 정리합니다.", model.TaskPriorityLow, model.TaskStatusCompleted, "2024-01-18", "2024-01-03T15:00:00Z"),
		task(8, "모바일 앱 테스트", "모바일 앱 기능을 테스트하고 버그를 수정합니다.", model.TaskPriorityHigh, model.TaskStatusPending, "2024-02-01", "2024-01-16T09:45:00Z"),
	}
}

func Messages(now time.Time) []model.Message {
	return []model.Message{
		{
			ID: "msg1", SenderID: "company1", SenderName: "인사팀", ReceiverID: "test01", ReceiverName: "김근로",
			Subject: "연차 신청 승인 안내", Content: "신청하신 연차가 승인되었습니다. 좋은 휴가 보내세요!",
			Timestamp: now.Add(-2 * time.Hour), Read: false,
		},
		{
			ID: "msg2", SenderID: "company1", SenderName: "인사팀", ReceiverID: "test01", ReceiverName: "김근로",
			Subject: "업무일지 피드백", Content: "어제 작성하신 업무일지 잘 확인했습니다. 수고하셨습니다!",
			Timestamp: now.Add(-24 * time.Hour), Read: true,
		},
	}
}

func parseDay(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

// Chat returns five direct rooms for company1 and their messages. Each
// room's summary matches its newest message.
func Chat() ([]model.ChatRoom, []model.ChatMessage) {
	sys := func(id, room, content, at string) model.ChatMessage {
		return model.ChatMessage{ID: id, RoomID: room, SenderID: "system", SenderName: "시스템", Content: content, Timestamp: parseDay(at), Type: model.ChatMessageSystem}
	}
	text := func(id, room, sender, name, content, at string) model.ChatMessage {
		return model.ChatMessage{ID: id, RoomID: room, SenderID: sender, SenderName: name, Content: content, Timestamp: parseDay(at), Type: model.ChatMessageText}
	}
	msgs := []model.ChatMessage{
		sys("msg1", "room1", "테스트기업회원 님이 들어왔습니다.", "2023-05-03"),
		sys("msg2", "room1", "관리자 님이 들어왔습니다.", "2023-05-03"),
		text("msg3", "room1", "admin", "admin 관리자", "테스트채팅", "2024-12-18"),
		text("msg4", "room1", "company1", "테스트기업회원", "테스트", "2024-12-18"),
		text("msg5", "room2", "test02", "test02 박인사", "귀엽네여", "2025-08-25"),
		text("msg6", "room3", "worker001", "worker001 이개발", "테스트", "2024-12-18"),
		text("msg7", "room4", "worker002", "worker002 박디자인", "hola", "2024-12-17"),
		text("msg8", "room4", "worker002", "worker002 박디자인", "안녕하세요", "2024-12-17"),
		text("msg9", "room5", "worker003", "worker003 최마케팅", "안녕하세요", "2024-12-16"),
	}
	room := func(id, name, other string, unread int) model.ChatRoom {
		r := model.ChatRoom{ID: id, Name: name, Participants: []string{"company1", other}, Unread: map[string]int{}, Type: model.ChatRoomDirect}
		if unread > 0 {
			r.Unread["company1"] = unread
			r.UnreadCount = unread
		}
		return r
	}
	rooms := []model.ChatRoom{
		room("room1", "admin (관리자)", "admin", 0),
		room("room2", "test02 (박인사)", "test02", 1),
		room("room3", "worker001 (이개발)", "worker001", 0),
		room("room4", "worker002 (박디자인)", "worker002", 2),
		room("room5", "worker003 (최마케팅)", "worker003", 0),
	}
	for i := range rooms {
		for _, m := range msgs {
			if m.RoomID != rooms[i].ID {
				continue
			}
			if rooms[i].LastMessageAt == nil || !m.Timestamp.Before(*rooms[i].LastMessageAt) {
				at := m.Timestamp
				rooms[i].LastMessage = m.Content
				rooms[i].LastMessageAt = &at
				rooms[i].LastMessageTime = service.FormatLastMessageTime(at)
			}
		}
	}
	return rooms, msgs
}
