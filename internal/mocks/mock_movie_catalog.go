package mocks

import (
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockMovieCatalog struct {
	mock.Mock
}

func (m *MockMovieCatalog) GetAll() []domain.Movie {
	args := m.Called()
	return args.Get(0).([]domain.Movie)
}

func (m *MockMovieCatalog) GetById(id int) (domain.Movie, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Movie), args.Error(1)
}
