package service

import (
    "context"
    "strconv"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/d60-Lab/social-feed/internal/cache"
    "github.com/d60-Lab/social-feed/internal/model"
)

func TestPublish_FanoutReachesEveryFollower(t *testing.T) {
    d := setupDeps(t)
    postSvc := d.postService()
    relSvc := d.relationshipService()
    ctx := context.Background()

    author := d.newUser(t, "author")
    fans := make([]*model.User, 3)
    for i := range fans {
        fans[i] = d.newUser(t, "fan"+strconv.Itoa(i))
        require.NoError(t, relSvc.Follow(ctx, fans[i].ID, author.ID))
    }

    post, err := postSvc.Publish(ctx, author.ID, "hello")
    require.NoError(t, err)
    require.NotZero(t, post.ID)

    member := strconv.FormatInt(post.ID, 10)
    for _, fan := range fans {
        score, err := d.rdb.ZScore(ctx, cache.Key(fan.ID), member).Result()
        require.NoError(t, err)
        require.EqualValues(t, post.Score(), int64(score))
    }
    // 作者自己的时间线不写
    n, err := d.rdb.Exists(ctx, cache.Key(author.ID)).Result()
    require.NoError(t, err)
    require.Zero(t, n)
}

func TestPublishAndFeed_CursorScenario(t *testing.T) {
    d := setupDeps(t)
    postSvc := d.postService()
    relSvc := d.relationshipService()
    ctx := context.Background()

    author := d.newUser(t, "author")
    fan := d.newUser(t, "fan")
    require.NoError(t, relSvc.Follow(ctx, fan.ID, author.ID))

    post, err := postSvc.Publish(ctx, author.ID, "hello")
    require.NoError(t, err)

    page, err := postSvc.GetFeed(ctx, fan.ID, nil)
    require.NoError(t, err)
    require.Len(t, page.Items, 1)
    require.Equal(t, post.ID, page.Items[0].ID)
    require.Equal(t, "hello", page.Items[0].Content)
    require.Equal(t, "author", page.Items[0].Username)
    require.NotNil(t, page.NextCursor)
    require.Equal(t, post.Score(), *page.NextCursor)

    // 用上一页 next_cursor 继续读：开区间上界，应拿到终止页
    page, err = postSvc.GetFeed(ctx, fan.ID, page.NextCursor)
    require.NoError(t, err)
    require.Empty(t, page.Items)
    require.Nil(t, page.NextCursor)
}

// seedTimeline 直接造 n 条毫秒互异的帖子并推进 fan 的缓存
func seedTimeline(t *testing.T, d *testDeps, author *model.User, fanID int64, n int) []*model.Post {
    t.Helper()
    ctx := context.Background()
    base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
    posts := make([]*model.Post, n)
    for i := 0; i < n; i++ {
        p := &model.Post{AuthorID: author.ID, Content: "p" + strconv.Itoa(i), CreatedAt: base.Add(time.Duration(i) * time.Second)}
        require.NoError(t, d.postRepo.Create(ctx, p))
        require.NoError(t, d.timeline.Push(ctx, fanID, p.ID, p.Score()))
        posts[i] = p
    }
    return posts
}

func TestGetFeed_PaginationTerminatesWithoutGapsOrDuplicates(t *testing.T) {
    d := setupDeps(t)
    postSvc := d.postService()
    ctx := context.Background()

    author := d.newUser(t, "author")
    fan := d.newUser(t, "fan")
    posts := seedTimeline(t, d, author, fan.ID, 25)

    var got []int64
    var cursor *int64
    pages := 0
    for {
        page, err := postSvc.GetFeed(ctx, fan.ID, cursor)
        require.NoError(t, err)
        if len(page.Items) == 0 {
            require.Nil(t, page.NextCursor)
            break
        }
        pages++
        require.LessOrEqual(t, len(page.Items), FeedPageSize)
        for _, it := range page.Items {
            got = append(got, it.ID)
        }
        cursor = page.NextCursor
        require.Less(t, pages, 10, "pagination must terminate")
    }
    require.Equal(t, 3, pages)

    want := make([]int64, 0, len(posts))
    for i := len(posts) - 1; i >= 0; i-- { // score 降序
        want = append(want, posts[i].ID)
    }
    require.Equal(t, want, got)
}

func TestGetFeed_EmptyTimeline(t *testing.T) {
    d := setupDeps(t)
    postSvc := d.postService()

    fan := d.newUser(t, "fan")
    page, err := postSvc.GetFeed(context.Background(), fan.ID, nil)
    require.NoError(t, err)
    require.Empty(t, page.Items)
    require.Nil(t, page.NextCursor)
}

func TestGetFeed_CursorFromHydratedRowsOnStoreShortfall(t *testing.T) {
    d := setupDeps(t)
    postSvc := d.postService()
    ctx := context.Background()

    author := d.newUser(t, "author")
    fan := d.newUser(t, "fan")
    posts := seedTimeline(t, d, author, fan.ID, 12)

    // 第一页缓存 id 为 posts[11..2]；把页尾 posts[2] 从库里删掉
    require.NoError(t, d.db.Delete(&model.Post{}, posts[2].ID).Error)

    page, err := postSvc.GetFeed(ctx, fan.ID, nil)
    require.NoError(t, err)
    require.Len(t, page.Items, 9)
    require.NotNil(t, page.NextCursor)
    // 游标来自水合结果的最后一行 posts[3]，而不是缓存页的 posts[2]
    require.Equal(t, posts[3].Score(), *page.NextCursor)

    page, err = postSvc.GetFeed(ctx, fan.ID, page.NextCursor)
    require.NoError(t, err)
    require.Len(t, page.Items, 2)
    require.Equal(t, posts[1].ID, page.Items[0].ID)
    require.Equal(t, posts[0].ID, page.Items[1].ID)
}

func TestLike_IdempotentCounter(t *testing.T) {
    d := setupDeps(t)
    postSvc := d.postService()
    ctx := context.Background()

    author := d.newUser(t, "author")
    liker := d.newUser(t, "liker")
    post := &model.Post{AuthorID: author.ID, Content: "hi"}
    require.NoError(t, d.postRepo.Create(ctx, post))

    require.NoError(t, postSvc.Like(ctx, liker.ID, post.ID))
    require.ErrorIs(t, postSvc.Like(ctx, liker.ID, post.ID), ErrAlreadyLiked)

    var reloaded model.Post
    require.NoError(t, d.db.First(&reloaded, post.ID).Error)
    require.EqualValues(t, 1, reloaded.LikeCount)

    var edges int64
    require.NoError(t, d.db.Model(&model.Like{}).Count(&edges).Error)
    require.EqualValues(t, 1, edges)
}

func TestLike_MissingPostRollsBackEdge(t *testing.T) {
    d := setupDeps(t)
    postSvc := d.postService()
    ctx := context.Background()

    liker := d.newUser(t, "liker")
    err := postSvc.Like(ctx, liker.ID, 9999)
    require.ErrorIs(t, err, gorm.ErrRecordNotFound)

    var edges int64
    require.NoError(t, d.db.Model(&model.Like{}).Count(&edges).Error)
    require.Zero(t, edges)
}

func TestPublish_PartialFanoutKeepsPost(t *testing.T) {
    d := setupDeps(t)
    postSvc := d.postService()
    relSvc := d.relationshipService()
    ctx := context.Background()

    author := d.newUser(t, "author")
    fan := d.newUser(t, "fan")
    require.NoError(t, relSvc.Follow(ctx, fan.ID, author.ID))

    d.mr.SetError("cache down")
    post, err := postSvc.Publish(ctx, author.ID, "hello")

    var pf *PartialFanoutError
    require.ErrorAs(t, err, &pf)
    require.NotNil(t, post)
    require.Equal(t, post.ID, pf.PostID)
    require.Zero(t, pf.Fanned)

    // 帖子是持久事实，不随扇出失败回滚
    var reloaded model.Post
    require.NoError(t, d.db.First(&reloaded, post.ID).Error)
    require.Equal(t, "hello", reloaded.Content)
}

func TestRebuildTimeline_RepairsAfterPartialFanout(t *testing.T) {
    d := setupDeps(t)
    postSvc := d.postService()
    relSvc := d.relationshipService()
    ctx := context.Background()

    author := d.newUser(t, "author")
    fan := d.newUser(t, "fan")
    require.NoError(t, relSvc.Follow(ctx, fan.ID, author.ID))

    p1, err := postSvc.Publish(ctx, author.ID, "one")
    require.NoError(t, err)
    p2, err := postSvc.Publish(ctx, author.ID, "two")
    require.NoError(t, err)

    // 模拟缓存丢失
    d.mr.FlushAll()
    page, err := postSvc.GetFeed(ctx, fan.ID, nil)
    require.NoError(t, err)
    require.Empty(t, page.Items)

    n, err := postSvc.RebuildTimeline(ctx, fan.ID)
    require.NoError(t, err)
    require.Equal(t, 2, n)

    page, err = postSvc.GetFeed(ctx, fan.ID, nil)
    require.NoError(t, err)
    require.Len(t, page.Items, 2)
    ids := []int64{page.Items[0].ID, page.Items[1].ID}
    require.ElementsMatch(t, []int64{p1.ID, p2.ID}, ids)

    size, err := d.timeline.Size(ctx, fan.ID)
    require.NoError(t, err)
    require.EqualValues(t, 2, size)
}
