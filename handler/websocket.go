package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"movienight_manager/database"
	"movienight_manager/helper"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

var (
	clients = make(map[uint]map[*websocket.Conn]bool)
	mu      sync.Mutex
)

func eventChannel(eventId uint) string {
	return fmt.Sprintf("joinevent:%d", eventId)
}

// JoinEventFeed streams participant/vote changes for one event: current
// state on connect, then every update published for the event's channel.
func JoinEventFeed(c *websocket.Conn) {
	idStr := c.Params("id")
	id64, _ := strconv.ParseUint(idStr, 10, 64)
	eventId := uint(id64)

	defer func() {
		mu.Lock()
		if clients[eventId] != nil {
			delete(clients[eventId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	if clients[eventId] == nil {
		clients[eventId] = make(map[*websocket.Conn]bool)
	}
	clients[eventId][c] = true
	mu.Unlock()

	if event, err := helper.GetJoinEventById(database.DB, eventId); err == nil && event != nil {
		c.WriteJSON(event.Participants)
	}

	if database.RDB == nil {
		return
	}

	pubsub := database.RDB.Subscribe(context.Background(), eventChannel(eventId))
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients[eventId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients[eventId], conn)
			}
		}
		mu.Unlock()
	}
}

// PublishEventUpdate pushes the event's refreshed participant state to every
// open feed.
func PublishEventUpdate(eventId uint) {
	if database.RDB == nil {
		return
	}
	event, err := helper.GetJoinEventById(database.DB, eventId)
	if err != nil || event == nil {
		return
	}
	payload, err := json.Marshal(event.Participants)
	if err != nil {
		return
	}
	database.RDB.Publish(context.Background(), eventChannel(eventId), payload)
}
