package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/tagdex/internal/db"
)

// --- client.go tests ---

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
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

// --- kv.go tests ---

func TestGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "tagdex:tag_slug:es:venta")).
		Return(mock.Result(mock.RedisString("7")))

	s := NewStoreForTest(c)
	v, err := s.Get(context.Background(), "tagdex:tag_slug:es:venta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(v) != "7" {
		t.Errorf("got %q", v)
	}
}

func TestGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "missing")).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestGetMulti_SkipsMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisString("1")),
			mock.Result(mock.RedisNil()),
		})

	s := NewStoreForTest(c)
	vals, err := s.GetMulti(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 2 || string(vals[0]) != "1" || vals[1] != nil {
		t.Errorf("unexpected values: %q", vals)
	}
}

func TestGetMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil)
	vals, err := s.GetMulti(context.Background(), nil)
	if err != nil || vals != nil {
		t.Fatalf("expected nil, nil; got %v, %v", vals, err)
	}
}

func TestGetMulti_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{mock.ErrorResult(context.DeadlineExceeded)})

	s := NewStoreForTest(c)
	_, err := s.GetMulti(context.Background(), []string{"a"})
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %v", err)
	}
}

// --- hash.go tests ---

func TestHGetAllMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
				"title": mock.RedisString("a"),
			})),
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{})),
		})

	s := NewStoreForTest(c)
	out, err := s.HGetAllMulti(context.Background(), []string{"k1", "k2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0]["title"] != "a" || len(out[1]) != 0 {
		t.Errorf("unexpected result: %v", out)
	}
}

// --- set.go tests ---

func TestSMembers_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SMEMBERS", "tagdex:listing:1")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("10"), mock.RedisString("11"))))

	s := NewStoreForTest(c)
	got, err := s.SMembers(context.Background(), "tagdex:listing:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %v", got)
	}
}

func TestSInter_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SINTER", "a", "b")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("10"))))

	s := NewStoreForTest(c)
	got, err := s.SInter(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "10" {
		t.Errorf("got %v", got)
	}
}

func TestSInter_CrossSlotIsUnsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SINTER"
		})).
		Return(mock.Result(mock.RedisError("CROSSSLOT Keys in request don't hash to the same slot")))

	s := NewStoreForTest(c)
	_, err := s.SInter(context.Background(), []string{"a", "b"})
	if !errors.Is(err, db.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestSInter_OtherErrorIsNotUnsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SINTER"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.SInter(context.Background(), []string{"a"})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, db.ErrUnsupported) {
		t.Error("timeouts must not be reported as unsupported")
	}
}

func TestSInter_NoKeys(t *testing.T) {
	s := NewStoreForTest(nil)
	if _, err := s.SInter(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
}

// --- zset.go tests ---

func TestZRevRangeWithScores_Limit(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("ZRANGE", "tagdex:assoc:article:3", "0", "9", "REV", "WITHSCORES")).
		Return(mock.Result(mock.RedisArray(
			mock.RedisString("101"), mock.RedisString("2.5"),
			mock.RedisString("102"), mock.RedisString("1"),
		)))

	s := NewStoreForTest(c)
	got, err := s.ZRevRangeWithScores(context.Background(), "tagdex:assoc:article:3", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 members, got %d", len(got))
	}
	if got[0].Member != "101" || got[0].Score != 2.5 {
		t.Errorf("first = %+v", got[0])
	}
}

func TestZRevRangeWithScores_Unbounded(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("ZRANGE", "k", "0", "-1", "REV", "WITHSCORES")).
		Return(mock.Result(mock.RedisArray()))

	s := NewStoreForTest(c)
	got, err := s.ZRevRangeWithScores(context.Background(), "k", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestZMScore_MissingMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("ZMSCORE", "k", "1", "2")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("3.5"), mock.RedisNil())))

	s := NewStoreForTest(c)
	scores, found, err := s.ZMScore(context.Background(), "k", []string{"1", "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found[0] || scores[0] != 3.5 {
		t.Errorf("member 1: %v %v", scores[0], found[0])
	}
	if found[1] {
		t.Error("member 2 should be missing")
	}
}

func TestZMScore_LengthMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "ZMSCORE" })).
		Return(mock.Result(mock.RedisArray(mock.RedisString("1"))))

	s := NewStoreForTest(c)
	if _, _, err := s.ZMScore(context.Background(), "k", []string{"1", "2"}); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

// --- list.go tests ---

func TestLRange_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("LRANGE", "tagdex:related:property:1:article", "0", "11")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("5"), mock.RedisString("6"))))

	s := NewStoreForTest(c)
	got, err := s.LRange(context.Background(), "tagdex:related:property:1:article", 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "5" {
		t.Errorf("got %v", got)
	}
}

func TestLRange_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "LRANGE" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if _, err := s.LRange(context.Background(), "k", 0); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

// --- geo.go tests ---

func TestGeoSearch_Validation(t *testing.T) {
	s := NewStoreForTest(nil)
	if _, err := s.GeoSearch(context.Background(), &db.GeoQuery{RadiusKm: 1}); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := s.GeoSearch(context.Background(), &db.GeoQuery{Key: "k"}); err == nil {
		t.Error("expected error for zero radius")
	}
}

func TestGeoSearch_Command(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"GEOSEARCH", "tagdex:poi:1",
			"FROMLONLAT", "-70.66", "-33.45",
			"BYRADIUS", "2.5", "km", "ASC", "COUNT", "5", "WITHCOORD", "WITHDIST",
		)).
		Return(mock.Result(mock.RedisArray()))

	s := NewStoreForTest(c)
	got, err := s.GeoSearch(context.Background(), &db.GeoQuery{
		Key: "tagdex:poi:1", Longitude: -70.66, Latitude: -33.45, RadiusKm: 2.5, Count: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no members, got %v", got)
	}
}

func TestGeoSearch_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "GEOSEARCH" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.GeoSearch(context.Background(), &db.GeoQuery{Key: "k", RadiusKm: 1})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestIsUnsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	tests := []struct {
		msg  string
		want bool
	}{
		{"CROSSSLOT Keys in request don't hash to the same slot", true},
		{"ERR unknown command 'SINTER'", true},
		{"NOPERM this user has no permissions to run the 'sinter' command", true},
		{"WRONGTYPE Operation against a key holding the wrong kind of value", false},
	}
	for _, tc := range tests {
		c.EXPECT().
			Do(gomock.Any(), mock.Match("PING")).
			Return(mock.Result(mock.RedisError(tc.msg)))
		err := c.Do(context.Background(), c.B().Ping().Build()).Error()
		if got := isUnsupported(err); got != tc.want {
			t.Errorf("isUnsupported(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
	if isUnsupported(context.Canceled) {
		t.Error("non-redis errors are never unsupported")
	}
}

func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
