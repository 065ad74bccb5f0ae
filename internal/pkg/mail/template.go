package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	textTemplate "text/template"
)

type mailTemplate struct {
	subject *textTemplate.Template
	body    *template.Template
}

var templates = map[Kind]mailTemplate{
	KindThreadComment: mustTemplate(
		`{{.actor}} commented on a thread in "{{.postTitle}}"`,
		`<p><b>{{.actor}}</b> left a new comment on a thread you follow in <i>{{.postTitle}}</i>:</p>
<blockquote>{{.body}}</blockquote>
<p><a href="{{.link}}">View the thread</a></p>`,
	),
	KindPostComment: mustTemplate(
		`{{.actor}} commented on "{{.postTitle}}"`,
		`<p><b>{{.actor}}</b> left a new comment on <i>{{.postTitle}}</i>:</p>
<blockquote>{{.body}}</blockquote>
<p><a href="{{.link}}">View the comment</a></p>`,
	),
	KindThreadCommentThanks: mustTemplate(
		`{{.actor}} thanked you for your comment`,
		`<p><b>{{.actor}}</b> thanked you for your comment on <i>{{.postTitle}}</i>:</p>
<blockquote>{{.body}}</blockquote>
<p><a href="{{.link}}">View the thread</a></p>`,
	),
	KindNewFollower: mustTemplate(
		`{{.actor}} started following you`,
		`<p><b>{{.actor}}</b> is now following you on Journaly.</p>
<p><a href="{{.link}}">View their profile</a></p>`,
	),
}

func mustTemplate(subject, body string) mailTemplate {
	return mailTemplate{
		subject: textTemplate.Must(textTemplate.New("subject").Option("missingkey=zero").Parse(subject)),
		body:    template.Must(template.New("body").Option("missingkey=zero").Parse(body)),
	}
}

// Render 渲染主题与 HTML 正文，相对链接会补全为站点绝对地址
func Render(job *Job, siteURL string) (string, string, error) {
	tpl, ok := templates[job.Kind]
	if !ok {
		return "", "", fmt.Errorf("unknown mail kind %q", job.Kind)
	}

	data := make(map[string]string, len(job.Data))
	for k, v := range job.Data {
		data[k] = v
	}
	if link := data[DataLink]; strings.HasPrefix(link, "/") {
		data[DataLink] = strings.TrimRight(siteURL, "/") + link
	}

	var subject, body bytes.Buffer
	if err := tpl.subject.Execute(&subject, data); err != nil {
		return "", "", err
	}
	if err := tpl.body.Execute(&body, data); err != nil {
		return "", "", err
	}
	return subject.String(), body.String(), nil
}
