package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// lookupSession 从 ?session= 查找会话，失败时已写出错误响应
func lookupSession(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := r.URL.Query().Get("session")
	if id == "" {
		http.Error(w, "missing session query", http.StatusBadRequest)
		return nil, false
	}
	s, ok := GetSessionManager().Get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

// HandleAdminConfig 提供会话配置的读取与更新（热更新基本规则）
// GET /admin/config?session=ID  返回当前配置
// POST /admin/config?session=ID 以 JSON 载荷更新部分字段
func HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	s, ok := lookupSession(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.Settings())
	case http.MethodPost:
		var patch SettingsPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.Tune(ctx, patch); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "settings": s.Settings()})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMetrics 输出指定会话的运行指标
// GET /metrics?session=ID
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	s, ok := lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session":  s.ID,
		"sessions": GetSessionManager().Count(),
		"metrics":  s.Metrics().Snapshot(),
	})
}

// HandleLeaderboard 输出会话最近一帧的排行榜
// GET /leaderboard?session=ID
func HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	s, ok := lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session":     s.ID,
		"leaderboard": s.Leaderboard(),
	})
}

// HandleBest 全局历史最高分
// GET /best
func HandleBest(w http.ResponseWriter, r *http.Request) {
	best, err := GetSessionManager().Best()
	if err != nil {
		Log.Warnf("read best score: %v", err)
		http.Error(w, "score store unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"best": best})
}

// Routes 注册全部 HTTP 路由；webDir 为空时不提供静态资源
func Routes(webDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", HandleWS)
	if webDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(webDir)))
	}
	// 管理与监控接口
	mux.HandleFunc("/admin/config", HandleAdminConfig)
	mux.HandleFunc("/metrics", HandleMetrics)
	mux.HandleFunc("/leaderboard", HandleLeaderboard)
	mux.HandleFunc("/best", HandleBest)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
