// Package topicmgr keeps the catalogue of pub/sub topics used by the
// application.
//
// Topics are declared once, usually as package-level values, and registered
// with the default manager:
//
//	var MessageChanged = topicmgr.DefineModule(topicmgr.TopicConfig{
//		Name:        "board.message.changed",
//		Module:      "board",
//		Description: "The status message of a board was shown or hidden",
//	})
//
// The catalogue backs the /health topic count and guards against two
// packages claiming the same topic name.
package topicmgr
