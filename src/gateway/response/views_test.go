package response

import (
	"testing"
	"time"

	"github.com/ecopickup/backend/src/utils/model"

	"github.com/stretchr/testify/assert"
)

func testPickup() *model.Pickup {
	agentId := "a1"
	return &model.Pickup{
		Id:     "p1",
		ItemId: "i1",
		Item: &model.Item{
			Id:     "i1",
			UserId: "u1",
			Title:  "Old fridge",
			User: &model.User{
				Id:      "u1",
				Name:    "Requester",
				Address: "1 Main St",
			},
		},
		UserId: "u1",
		User: &model.User{
			Id:      "u1",
			Name:    "Requester",
			Email:   "requester@example.com",
			Address: "1 Main St",
		},
		AgentId: &agentId,
		Agent: &model.Agent{
			Id:     "a1",
			UserId: "u2",
			User: &model.User{
				Id:      "u2",
				Name:    "Agent",
				Address: "2 Depot Rd",
			},
		},
		Status:    model.PickupStatusAccepted,
		CreatedAt: time.Now(),
	}
}

func TestOwnerPickupHidesOwnAddressEcho(t *testing.T) {
	view := OwnerPickup(testPickup())

	assert.Nil(t, view.Requester)
	assert.NotNil(t, view.Item)
	assert.NotNil(t, view.Agent)
	assert.NotNil(t, view.Agent.User)
	// The owner sees who the agent is but not where they live
	assert.Empty(t, view.Agent.User.Address)
}

func TestAgentPickupIncludesRequesterAddress(t *testing.T) {
	view := AgentPickup(testPickup())

	assert.Nil(t, view.Agent)
	assert.NotNil(t, view.Requester)
	assert.Equal(t, "1 Main St", view.Requester.Address)
	assert.Equal(t, "requester@example.com", view.Requester.Email)
}

func TestAdminPickupJoinsEverything(t *testing.T) {
	view := AdminPickup(testPickup())

	assert.NotNil(t, view.Item)
	assert.NotNil(t, view.Requester)
	assert.NotNil(t, view.Agent)
}

func TestProjectionsHandleMissingJoins(t *testing.T) {
	pickup := &model.Pickup{Id: "p1", ItemId: "i1", UserId: "u1", Status: model.PickupStatusPending}

	for _, view := range []*Pickup{OwnerPickup(pickup), AgentPickup(pickup), AdminPickup(pickup)} {
		assert.Equal(t, "p1", view.Id)
		assert.Nil(t, view.Item)
		assert.Nil(t, view.Agent)
		assert.Nil(t, view.AgentId)
	}
}

func TestItemLocationPassthrough(t *testing.T) {
	item := &model.Item{Id: "i1"}
	err := item.Location.Set([]byte(`{"lat":1,"lng":2}`))
	assert.NoError(t, err)

	view := ItemFromModel(item, false)
	assert.JSONEq(t, `{"lat":1,"lng":2}`, string(view.Location))
}
