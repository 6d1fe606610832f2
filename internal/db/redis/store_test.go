package redis

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// --- client.go ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.Ping(context.Background())
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpPing {
		t.Fatalf("expected db.Error with PING op, got %v", err)
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

// --- kv.go ---

func TestGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "mykey")).
		Return(mock.Result(mock.RedisBlobString("value")))

	s := NewStoreForTest(c)
	data, err := s.Get(context.Background(), "mykey")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "value" {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "mykey")).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	_, err := s.Get(context.Background(), "mykey")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "mykey", "myvalue")).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.Set(context.Background(), "mykey", []byte("myvalue")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetWithTTL_UsesPX(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "mykey", "myvalue", "PX", "1500")).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.SetWithTTL(context.Background(), "mykey", []byte("myvalue"), 1500*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "SET" })).
		Return(mock.ErrorResult(errors.New("READONLY")))

	s := NewStoreForTest(c)
	err := s.Set(context.Background(), "k", []byte("v"))
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSet {
		t.Fatalf("expected db.Error with SET op, got %v", err)
	}
}

func TestIncrBy_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("INCRBY", "counter", "5")).
		Return(mock.Result(mock.RedisInt64(5)))

	s := NewStoreForTest(c)
	if err := s.IncrBy(context.Background(), "counter", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExpire(t *testing.T) {
	tests := []struct {
		name   string
		nx     bool
		wantNX bool
	}{
		{"plain", false, false},
		{"nx", true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c := mock.NewClient(ctrl)

			c.EXPECT().
				Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
					return cmd[0] == "EXPIRE" && cmd[1] == "mykey" && cmd[2] == "300" &&
						slices.Contains(cmd, "NX") == tc.wantNX
				})).
				Return(mock.Result(mock.RedisInt64(1)))

			s := NewStoreForTest(c)
			if err := s.Expire(context.Background(), "mykey", 300*time.Second, tc.nx); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// --- window.go ---

func isEval(cmd []string) bool {
	return cmd[0] == "EVALSHA" || cmd[0] == "EVAL"
}

func TestIncrWindow_Admitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	now := time.UnixMilli(1_700_000_000_000)
	reset := now.Add(time.Minute).UnixMilli()

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			// EVALSHA sha numkeys key now window limit
			return isEval(cmd) && cmd[2] == "1" && cmd[3] == "rl:1.2.3.4" &&
				cmd[4] == "1700000000000" && cmd[5] == "60000" && cmd[6] == "10"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1), mock.RedisInt64(1), mock.RedisInt64(reset),
		)))

	s := NewStoreForTest(c)
	res, err := s.IncrWindow(context.Background(), "rl:1.2.3.4", now, time.Minute, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Admitted || res.Count != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.ResetAt.UnixMilli() != reset {
		t.Errorf("ResetAt = %v", res.ResetAt)
	}
}

func TestIncrWindow_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(isEval)).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(0), mock.RedisInt64(10), mock.RedisInt64(1_700_000_030_000),
		)))

	s := NewStoreForTest(c)
	res, err := s.IncrWindow(context.Background(), "k", time.UnixMilli(1_700_000_000_000), time.Minute, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Admitted || res.Count != 10 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestIncrWindow_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(isEval)).
		Return(mock.ErrorResult(context.DeadlineExceeded)).
		AnyTimes()

	s := NewStoreForTest(c)
	_, err := s.IncrWindow(context.Background(), "k", time.Now(), time.Minute, 10)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped deadline error, got %v", err)
	}
}

func TestIncrWindow_ShortReply(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(isEval)).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(1))))

	s := NewStoreForTest(c)
	_, err := s.IncrWindow(context.Background(), "k", time.Now(), time.Minute, 10)
	if !errors.Is(err, db.ErrUnexpectedReply) {
		t.Fatalf("expected ErrUnexpectedReply, got %v", err)
	}
}
