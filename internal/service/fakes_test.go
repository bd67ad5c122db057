package service

import (
	"github.com/hntruong/quizdeck/internal/model"
	"github.com/hntruong/quizdeck/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users  map[string]*model.User // keyed by username
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByPublicID(publicID string) (*model.User, error) {
	for _, user := range f.users {
		if user.PublicID == publicID {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTestRepo struct {
	tests     map[uint]*model.Test
	order     []uint
	nextID    uint
	createErr error
}

func newFakeTestRepo(tests ...*model.Test) *fakeTestRepo {
	f := &fakeTestRepo{tests: make(map[uint]*model.Test)}
	for _, test := range tests {
		_ = f.Create(test)
	}
	return f
}

func (f *fakeTestRepo) Create(test *model.Test) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	test.ID = f.nextID
	f.tests[test.ID] = test
	f.order = append(f.order, test.ID)
	return nil
}

func (f *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	test, ok := f.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return test, nil
}

func (f *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	return f.FindByID(id)
}

func (f *fakeTestRepo) SetActive(id uint, active bool) error {
	test, ok := f.tests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	test.Active = active
	return nil
}

func (f *fakeTestRepo) FindAllActiveWithQuestionCount() ([]repository.TestWithQuestionCount, error) {
	var results []repository.TestWithQuestionCount
	for _, id := range f.order {
		test := f.tests[id]
		if !test.Active {
			continue
		}
		results = append(results, repository.TestWithQuestionCount{
			Test:          *test,
			QuestionCount: len(test.Questions),
		})
	}
	return results, nil
}

type fakeAttemptRepo struct {
	attempts []*model.TestAttempt
	nextID   uint
}

func newFakeAttemptRepo(attempts ...*model.TestAttempt) *fakeAttemptRepo {
	f := &fakeAttemptRepo{}
	for _, attempt := range attempts {
		_ = f.Create(attempt)
	}
	return f
}

func (f *fakeAttemptRepo) Create(attempt *model.TestAttempt) error {
	f.nextID++
	attempt.ID = f.nextID
	f.attempts = append(f.attempts, attempt)
	return nil
}

func (f *fakeAttemptRepo) CreateGraded(attempt *model.TestAttempt, grade func(prior int) error) error {
	prior, _ := f.CountByTestAndUser(attempt.TestID, attempt.UserID)
	if err := grade(int(prior)); err != nil {
		return err
	}
	return f.Create(attempt)
}

func (f *fakeAttemptRepo) FindByIDWithAnswers(id uint) (*model.TestAttempt, error) {
	for _, attempt := range f.attempts {
		if attempt.ID == id {
			return attempt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttemptRepo) FindAllByTestAndUser(testID, userID uint) ([]model.TestAttempt, error) {
	var matches []model.TestAttempt
	for i := len(f.attempts) - 1; i >= 0; i-- {
		attempt := f.attempts[i]
		if attempt.TestID == testID && attempt.UserID == userID {
			matches = append(matches, *attempt)
		}
	}
	return matches, nil
}

func (f *fakeAttemptRepo) CountByTestAndUser(testID, userID uint) (int64, error) {
	var count int64
	for _, attempt := range f.attempts {
		if attempt.TestID == testID && attempt.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeLeaderboardRepo struct {
	rows     []repository.LeaderboardRow
	gotLimit int
}

func (f *fakeLeaderboardRepo) TopStandings(limit int) ([]repository.LeaderboardRow, error) {
	f.gotLimit = limit
	if limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}
