package kafka

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// CanalMessage Canal 推送到 Kafka 的 JSON 数据结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data 变更后的数据
	Data []map[string]interface{} `json:"data"`

	// Old 变更前的数据，只包含被修改的列
	Old []map[string]interface{} `json:"old"`

	SqlType   map[string]int    `json:"sqlType"`
	MysqlType map[string]string `json:"mysqlType"`
}

var ErrEmptyCanalData = errors.New("canal data is empty")

// ToCanalMessage 将kafka消息转换为canal消息结构体
func ToCanalMessage(msg *sarama.ConsumerMessage) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		return nil, err
	}
	if canalMsg.IsDDL || len(canalMsg.Data) == 0 {
		return nil, ErrEmptyCanalData
	}
	return &canalMsg, nil
}

// OldRow 第 i 行变更前的数据
func (m *CanalMessage) OldRow(i int) map[string]interface{} {
	if i < len(m.Old) {
		return m.Old[i]
	}
	return nil
}

// StrToUint64 canal 的列值均为字符串，也兼容数字
func StrToUint64(v interface{}) uint64 {
	switch x := v.(type) {
	case string:
		n, err := strconv.ParseUint(x, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case float64:
		if x < 0 {
			return 0
		}
		return uint64(x)
	case json.Number:
		n, err := strconv.ParseUint(x.String(), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
