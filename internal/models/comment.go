package models

// 댓글 본문 치환용 문구
const (
	// SecretCommentText 삭제/비밀 처리된 댓글의 대체 문구
	SecretCommentText = "비밀댓글"
	// ImageMarkerText 댓글 본문 내 이미지 표시 문구
	ImageMarkerText = "(이미지)"
)

// CommentWriter 댓글 작성자 정보
type CommentWriter struct {
	ID   string `json:"id"`
	Nick string `json:"nick"`
}

// Comment 콘텐츠 페이지의 댓글 1건
// JSON 엔드포인트가 전달한 순서(오래된 순)를 유지하며, 생성 후 수정하지 않는다
type Comment struct {
	ID       int64         `json:"id"`
	Date     string        `json:"date"`
	Writer   CommentWriter `json:"writer"`
	Contents string        `json:"contents"`
	// ParentCommentID 0이면 최상위 댓글
	// DOM 폴백 경로는 부모를 복원할 수 없으므로 항상 0이고 IsReply만 신뢰할 수 있다
	ParentCommentID int64 `json:"parentCommentId"`
	IsReply         bool  `json:"isReply"`
}
