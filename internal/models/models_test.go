package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationTurnTableName(t *testing.T) {
	assert.Equal(t, "message_memory", ConversationTurn{}.TableName())
}

func TestAllListsEveryModel(t *testing.T) {
	all := All()
	assert.Len(t, all, 4)
	assert.IsType(t, &Patient{}, all[0])
	assert.IsType(t, &ConversationTurn{}, all[3])
}
