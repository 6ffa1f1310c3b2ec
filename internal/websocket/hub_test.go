package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForMessage(t *testing.T, ch chan []byte) []byte {
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for badge update")
		return nil
	}
}

func TestHub_NotifyBadge_ReachesAllTabs(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	tab1 := &Client{Hub: hub, CartID: "cart-abc", Send: make(chan []byte, 16)}
	tab2 := &Client{Hub: hub, CartID: "cart-abc", Send: make(chan []byte, 16)}
	other := &Client{Hub: hub, CartID: "cart-xyz", Send: make(chan []byte, 16)}

	hub.Register(tab1)
	hub.Register(tab2)
	hub.Register(other)

	// Registration is asynchronous.
	require.Eventually(t, func() bool {
		return hub.IsCartWatched("cart-abc") && hub.IsCartWatched("cart-xyz")
	}, time.Second, 5*time.Millisecond)

	hub.NotifyBadge("cart-abc", 4)

	for _, tab := range []*Client{tab1, tab2} {
		var update BadgeUpdate
		require.NoError(t, json.Unmarshal(waitForMessage(t, tab.Send), &update))
		assert.Equal(t, "badge", update.Type)
		assert.Equal(t, "cart-abc", update.CartID)
		assert.Equal(t, 4, update.TotalItems)
	}

	// The other cart's tab hears nothing.
	select {
	case <-other.Send:
		t.Fatal("unrelated cart received a badge update")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Unregister_ClosesSendAndForgetsCart(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, CartID: "cart-abc", Send: make(chan []byte, 16)}
	hub.Register(client)

	require.Eventually(t, func() bool {
		return hub.IsCartWatched("cart-abc")
	}, time.Second, 5*time.Millisecond)

	hub.Unregister(client)

	require.Eventually(t, func() bool {
		return !hub.IsCartWatched("cart-abc")
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open)
}

func TestHub_Unregister_TwiceIsNoOpWhileOtherTabStays(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	tab1 := &Client{Hub: hub, CartID: "cart-abc", Send: make(chan []byte, 16)}
	tab2 := &Client{Hub: hub, CartID: "cart-abc", Send: make(chan []byte, 16)}
	hub.Register(tab1)
	hub.Register(tab2)

	// Pump updates until both tabs have heard one, so both registrations
	// are known to be processed before the unregisters go in.
	var got1, got2 bool
	require.Eventually(t, func() bool {
		hub.NotifyBadge("cart-abc", 1)
		select {
		case <-tab1.Send:
			got1 = true
		default:
		}
		select {
		case <-tab2.Send:
			got2 = true
		default:
		}
		return got1 && got2
	}, time.Second, 5*time.Millisecond)

	// A slow-consumer eviction and the read pump's deferred unregister can
	// both fire for the same tab. The second must not close Send again.
	hub.Unregister(tab1)
	hub.Unregister(tab1)

	// Drain tab1 until the close is observed; a panic in Run would leave
	// the channel open and fail this wait.
	require.Eventually(t, func() bool {
		for {
			select {
			case _, open := <-tab1.Send:
				if !open {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 5*time.Millisecond)

	// The surviving tab still receives updates after both unregisters.
	// Stale pump updates may still be in flight, so wait for this one.
	hub.NotifyBadge("cart-abc", 2)

	deadline := time.After(time.Second)
	for {
		var update BadgeUpdate
		select {
		case msg := <-tab2.Send:
			require.NoError(t, json.Unmarshal(msg, &update))
			if update.TotalItems == 2 {
				return
			}
		case <-deadline:
			t.Fatal("surviving tab never received the badge update")
		}
	}
}
