package eventbus

// 전역 토픽 선언. 설정(audit.topic)으로 교체할 수 있도록 한 곳에서 관리합니다.

var (
	TopicConsoleAudit = NewTopic("locker-console.audit")
)
