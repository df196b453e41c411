package archive

import (
	"context"
	"testing"

	"github.com/and-other-tales/reception/internal/utils"
)

func TestListByRoom_RequiresRoomName(t *testing.T) {
	s := NewStore(nil)
	_, err := s.ListByRoom(context.Background(), "", 10)
	if err == nil {
		t.Fatal("expected error for empty room name")
	}
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}
