// feedbench 对比 feed 查询在有无 Redis 缓存时的延迟。
//
// 用法: USERS=200 POSTS=5000 FOLLOWS=20 READS=500 go run ./cmd/feedbench
package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/cache"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func report(name string, ds []time.Duration) {
	var sum time.Duration
	for _, d := range ds {
		sum += d
	}
	avg := time.Duration(0)
	if len(ds) > 0 {
		avg = sum / time.Duration(len(ds))
	}
	fmt.Printf("%-22s n=%d avg=%v p95=%v p99=%v\n", name, len(ds), avg, pct(ds, 0.95), pct(ds, 0.99))
}

func measure(reads int, fn func(i int) error) []time.Duration {
	out := make([]time.Duration, 0, reads)
	for i := 0; i < reads; i++ {
		st := time.Now()
		if err := fn(i); err != nil {
			panic(err)
		}
		out = append(out, time.Since(st))
	}
	return out
}

func main() {
	ctx := context.Background()
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)
	if err := model.AutoMigrate(db); err != nil {
		panic(err)
	}

	USERS := envInt("USERS", 200)
	POSTS := envInt("POSTS", 5000)
	FOLLOWS := envInt("FOLLOWS", 20)
	READS := envInt("READS", 500)
	rng := rand.New(rand.NewSource(42))

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)

	// seed
	group := &model.Group{Title: "bench", Slug: "bench-" + uuid.NewString()[:8]}
	if err := groupRepo.Create(ctx, group); err != nil {
		panic(err)
	}
	users := make([]model.User, USERS)
	for i := range users {
		id := uuid.NewString()
		users[i] = model.User{ID: id, Username: "b" + id[:12]}
	}
	if err := db.CreateInBatches(&users, 500).Error; err != nil {
		panic(err)
	}
	posts := make([]model.Post, POSTS)
	base := time.Now().Add(-time.Duration(POSTS) * time.Second)
	for i := range posts {
		posts[i] = model.Post{
			Text:      fmt.Sprintf("bench post %d", i),
			AuthorID:  users[rng.Intn(USERS)].ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if i%3 == 0 {
			posts[i].GroupID = &group.ID
		}
	}
	if err := db.Omit("Author", "Group").CreateInBatches(&posts, 500).Error; err != nil {
		panic(err)
	}
	reader := users[0]
	for i := 0; i < FOLLOWS && i+1 < USERS; i++ {
		_, _ = followRepo.Ensure(ctx, reader.ID, users[i+1].ID)
	}
	viewer := &service.Viewer{ID: reader.ID, Username: reader.Username}
	fmt.Printf("USERS=%d POSTS=%d FOLLOWS=%d READS=%d\n", USERS, POSTS, FOLLOWS, READS)

	page := func(i int) string { return strconv.Itoa(i%5 + 1) }

	plain := service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, nil)
	report("global (db)", measure(READS, func(i int) error { _, err := plain.Global(ctx, page(i)); return err }))
	report("group (db)", measure(READS, func(i int) error { _, err := plain.Group(ctx, group.Slug, page(i)); return err }))
	report("following (db)", measure(READS, func(i int) error { _, err := plain.Following(ctx, viewer, page(i)); return err }))

	if !cfg.Redis.Enabled {
		fmt.Println("redis disabled, skip cached run")
		return
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Printf("redis unavailable: %v\n", err)
		return
	}
	fc := cache.NewFeedCache(rdb, cfg.Redis.FeedTTL)
	fc.Invalidate(ctx)
	cached := service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, fc)
	report("global (redis)", measure(READS, func(i int) error { _, err := cached.Global(ctx, page(i)); return err }))
}
