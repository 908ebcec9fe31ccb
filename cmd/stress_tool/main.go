package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// 并发压测：N 个用户同时关注同一帖子并为同一评论投票两次，
// 结束后关注数与得分都应等于 N。服务端需以 RATELIMIT_RPS=0 启动，否则注册会被限流
var (
	baseURL    = flag.String("url", "http://localhost:8000", "API base URL")
	totalUsers = flag.Int("users", 200, "concurrent users")
	httpClient *http.Client
)

func init() {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxIdleConnsPerHost = 2000
	t.MaxConnsPerHost = 2000
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

func main() {
	flag.Parse()
	run := uuid.NewString()[:8]

	owner := signup("owner_" + run)
	postID := createPost(owner)
	commentID := addComment(owner, postID)

	fmt.Printf("注册 %d 个用户...\n", *totalUsers)
	tokens := make([]string, *totalUsers)
	var wg sync.WaitGroup
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = signup(fmt.Sprintf("user_%s_%d", run, i))
		}(i)
	}
	wg.Wait()

	fmt.Printf("开始压测：%d 个用户并发关注帖子 %d 并为评论 %d 投票...\n", *totalUsers, postID, commentID)
	var mu sync.Mutex
	failures := 0
	start := time.Now()

	for _, token := range tokens {
		if token == "" {
			continue
		}
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			ok := call(token, http.MethodPost, fmt.Sprintf("/posts/%d/interested", postID), nil) &&
				call(token, http.MethodPost, fmt.Sprintf("/comments/%d/vote", commentID), map[string]bool{"is_upvote": false}) &&
				call(token, http.MethodPost, fmt.Sprintf("/comments/%d/vote", commentID), map[string]bool{"is_upvote": true})
			if !ok {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(token)
	}
	wg.Wait()
	duration := time.Since(start)

	interest, score := readBack(postID, commentID)

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", duration)
	fmt.Printf("总请求数: %d\n", *totalUsers*3)
	fmt.Printf("QPS: %.2f\n", float64(*totalUsers*3)/duration.Seconds())
	fmt.Printf("失败用户: %d\n", failures)
	fmt.Printf("关注数: %d (预期: %d)\n", interest, *totalUsers-failures)
	fmt.Printf("评论得分: %d (预期: %d)\n", score, *totalUsers-failures)
	fmt.Println("--------------------------------------------------")
}

func signup(username string) string {
	password := "stress-" + username
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := httpClient.Post(*baseURL+"/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return ""
	}
	resp.Body.Close()

	form := url.Values{"username": {username}, "password": {password}}
	resp, err = httpClient.Post(*baseURL+"/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&tok)
	return tok.AccessToken
}

func createPost(token string) uint {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", "Stress test spoon")
	_ = mw.WriteField("tags", "Metal")
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, *baseURL+"/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var post struct {
		ID uint `json:"id"`
	}
	mustDecode(req, &post)
	return post.ID
}

func addComment(token string, postID uint) uint {
	body, _ := json.Marshal(map[string]string{"content": "stress"})
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/posts/%d/comments", *baseURL, postID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	var comment struct {
		ID uint `json:"id"`
	}
	mustDecode(req, &comment)
	return comment.ID
}

func call(token, method, path string, payload interface{}) bool {
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, *baseURL+path, body)
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

func readBack(postID, commentID uint) (int64, int64) {
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/posts/%d", *baseURL, postID), nil)
	var detail struct {
		InterestCount int64 `json:"interest_count"`
		Comments      []struct {
			ID    uint  `json:"id"`
			Score int64 `json:"score"`
		} `json:"comments"`
	}
	mustDecode(req, &detail)

	for _, c := range detail.Comments {
		if c.ID == commentID {
			return detail.InterestCount, c.Score
		}
	}
	return detail.InterestCount, 0
}

func mustDecode(req *http.Request, v interface{}) {
	resp, err := httpClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("%s %s: %d %s", req.Method, req.URL.Path, resp.StatusCode, respBody))
	}
	if err := json.Unmarshal(respBody, v); err != nil {
		panic(err)
	}
}
