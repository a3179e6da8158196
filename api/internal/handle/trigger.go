package handle

import (
	"context"
	"errors"
	"net/http"

	"essay-feedback/api/internal/feedback"
	"essay-feedback/api/internal/llm"
)

// Plain-text bodies of the client errors.
const (
	msgMissingIDs = "❌ 缺少必要的 Page ID"
	msgNoContent  = "❌ 短文庫內沒有內容"
)

// successPage sends the user back to the Notion app and closes the tab after 3 s.
const successPage = `<html>
<script>
    function goToNotion() {
        window.location.href = "notion://";
        setTimeout(() => {
            window.close();
        }, 3000);
    }
</script>

<body>
    ✅ 批改完成！結果已回寫到 Notion！
    <br><br>
    <a id="notion-link" href="notion://" onclick="goToNotion()">👉 點這裡回 Notion</a>
</body>
</html>
`

// Trigger reads text_page_id and row_page_id from the query string and runs
// the feedback pipeline. Once the pipeline is reached the answer is 200 even
// if the reply was malformed or the write failed.
func (h *Handle) Trigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "GET or POST only", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	req := feedback.Request{
		TextPageID: q.Get("text_page_id"),
		RowPageID:  q.Get("row_page_id"),
		LLMName:    q.Get("llm_name"),
	}
	// Only absent or empty ids are rejected; anything else is passed to Notion as is.
	if req.TextPageID == "" || req.RowPageID == "" {
		http.Error(w, msgMissingIDs, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	run, err := h.svc.Process(ctx, req)
	switch {
	case errors.Is(err, feedback.ErrNoContent):
		h.log.Warn("essay page has no content", "text_page_id", req.TextPageID)
		http.Error(w, msgNoContent, http.StatusBadRequest)
		return
	case errors.Is(err, llm.ErrUnknownEngine):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.log.Error("feedback failed", "text_page_id", req.TextPageID, "row_page_id", req.RowPageID, "error", err)
		http.Error(w, "feedback error: "+err.Error(), http.StatusBadGateway)
		return
	}

	h.log.Info("feedback done",
		"row_page_id", run.RowPageID,
		"engine", run.Engine,
		"degraded", run.Degraded,
		"write_ok", run.WriteOK,
	)
	writeHTML(w, http.StatusOK, successPage)
}
