// Package livefeed provides a Go client for the Webcast real-time event
// feed used by live-streaming rooms. A minimal consumer looks like:
//
//	c := livefeed.New(config.Defaults())
//	c.On(events.KindChat, func(ev events.Event) {
//		msg := ev.(events.ChatMessage)
//		fmt.Println(msg.User.Nickname, msg.Comment)
//	})
//	err := c.Start(context.Background(), "@someone")
//
// See cmd/livefeed-cli for a complete runnable example.
package livefeed
