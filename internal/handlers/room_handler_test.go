package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"pgmgmt/internal/models"
	"pgmgmt/internal/services"
	"pgmgmt/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoomStore struct {
	rooms []models.Room
}

func (s *stubRoomStore) FindByRoomNo(roomNo string) (*models.Room, error) {
	for i := range s.rooms {
		if s.rooms[i].RoomNo == roomNo {
			room := s.rooms[i]
			return &room, nil
		}
	}
	return nil, nil
}

func (s *stubRoomStore) FindAll() ([]models.Room, error) {
	rooms := append([]models.Room{}, s.rooms...)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNo < rooms[j].RoomNo })
	return rooms, nil
}

func (s *stubRoomStore) Save(room *models.Room) error { return nil }

func (s *stubRoomStore) Delete(id uint) error { return nil }

type pagedRoomsResponse struct {
	Code     int                  `json:"code"`
	Message  string               `json:"message"`
	Data     []models.Room        `json:"data"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

func TestRoomGetAll_ReturnsRequestedPageOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &stubRoomStore{}
	for i := 1; i <= 25; i++ {
		store.rooms = append(store.rooms, models.Room{
			RoomNo:   fmt.Sprintf("R%02d", i),
			Capacity: 2,
		})
	}

	router := gin.New()
	handler := NewRoomHandler(services.NewRoomService(store))
	router.GET("/api/rooms", handler.GetAll)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms?page=1&page_size=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var first pagedRoomsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Len(t, first.Data, 10, "只返回请求页的数据")
	assert.Equal(t, "R01", first.Data[0].RoomNo)
	require.NotNil(t, first.PageInfo)
	assert.Equal(t, int64(25), first.PageInfo.Total)
	assert.Equal(t, 3, first.PageInfo.TotalPages)
	assert.True(t, first.PageInfo.HasNext)

	// 末页只剩余数
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/rooms?page=3&page_size=10", nil)
	router.ServeHTTP(w, req)

	var last pagedRoomsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &last))
	assert.Len(t, last.Data, 5)
	assert.Equal(t, "R21", last.Data[0].RoomNo)
	assert.False(t, last.PageInfo.HasNext)
	assert.True(t, last.PageInfo.HasPrev)
}
