package store

import "testing"

func TestHelloReplySupportsTransactions(t *testing.T) {
	cases := []struct {
		name  string
		reply helloReply
		want  bool
	}{
		{"standalone", helloReply{}, false},
		{"replica set", helloReply{SetName: "rs0"}, true},
		{"mongos", helloReply{Msg: "isdbgrid"}, true},
	}
	for _, tc := range cases {
		if got := tc.reply.supportsTransactions(); got != tc.want {
			t.Errorf("%s: supportsTransactions = %v, want %v", tc.name, got, tc.want)
		}
	}
}
