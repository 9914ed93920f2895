package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const styles = `
:root { color-scheme: dark; }
* { box-sizing: border-box; }
body { margin: 0; min-height: 100vh; background: #1a1d29; color: #fff; font-family: system-ui, sans-serif; }
.shell { max-width: 430px; margin: 0 auto; padding: 24px 16px 80px; display: flex; flex-direction: column; gap: 16px; }
.card { background: rgba(45, 53, 72, .8); border: 1px solid rgba(55, 65, 81, .5); border-radius: 12px; padding: 16px; }
.banner { background: rgba(45, 53, 72, .6); border-color: rgba(59, 130, 246, .3); padding: 12px; color: rgba(147, 197, 253, .9); font-size: 12px; }
.banner p { margin: 0; }
.banner-time { font-weight: 600; color: #dbeafe; }
.title { text-align: center; font-size: 30px; margin: 16px 0 0; }
.table-count { text-align: right; font-size: 12px; color: #9ca3af; padding-right: 4px; }
.overview { display: grid; grid-template-columns: 1fr 1fr; gap: 12px; margin-top: 4px; }
.totals { text-align: center; }
.totals-value { font-size: 36px; font-weight: 700; }
.totals-caption { color: #d1d5db; font-size: 14px; }
.progress { margin-top: 12px; height: 8px; border-radius: 999px; background: rgba(17, 24, 39, .7); overflow: hidden; }
.progress-fill { height: 100%; border-radius: 999px; transition: width .5s; }
.progress-label { margin-top: 4px; font-size: 11px; color: #9ca3af; }
.legend { display: flex; flex-direction: column; justify-content: center; gap: 8px; font-size: 14px; }
.legend-item { display: flex; align-items: center; gap: 8px; }
.dot { display: inline-block; width: 14px; height: 14px; border-radius: 999px; }
.tone-green { background: rgba(52, 211, 153, .8); }
.tone-yellow { background: rgba(252, 211, 77, .8); }
.tone-red { background: rgba(251, 113, 133, .8); }
.tone-none { background: rgba(58, 67, 90, .8); }
.seating-header { display: flex; align-items: center; justify-content: space-between; margin-bottom: 16px; }
.seating-header h2 { margin: 0; font-size: 20px; }
.seat-grid { display: grid; grid-template-columns: repeat(2, 1fr); gap: 8px; }
.seat { min-height: 56px; border-radius: 8px; padding: 12px; display: flex; flex-direction: column; align-items: center; justify-content: center; gap: 4px; color: #111827; font-weight: 600; }
.seat-empty { visibility: hidden; }
.seat-loading { background: rgba(58, 67, 90, .8); animation: pulse 1.5s infinite; }
.seat-icon { font-size: 12px; color: #1f2937; }
.skeleton { display: flex; flex-direction: column; align-items: center; gap: 10px; animation: pulse 1.5s infinite; }
.sk { border-radius: 6px; background: rgba(100, 116, 139, .4); }
.sk-lg { height: 36px; width: 96px; }
.sk-md { height: 14px; width: 100px; }
.sk-sm { height: 16px; width: 40px; background: rgba(17, 24, 39, .4); }
.sk-bar { height: 8px; width: 100%; max-width: 180px; border-radius: 999px; }
@keyframes pulse { 50% { opacity: .5; } }
.btn { border-radius: 8px; padding: 6px 12px; font-size: 14px; cursor: pointer; color: #fff; border: 1px solid transparent; }
.btn-default { background: #4a5568; }
.btn-outline { background: transparent; border-color: #4b5563; color: #d1d5db; }
.btn-outline:hover { background: #3a4558; color: #fff; }
.btn-ghost { background: transparent; font-size: 20px; }
.btn-ghost:hover { background: rgba(255, 255, 255, .1); }
.sheet-backdrop { position: fixed; inset: 0; background: rgba(0, 0, 0, .6); }
.sheet { position: fixed; left: 50%; bottom: 0; transform: translateX(-50%); width: 100%; max-width: 430px; height: 75vh; overflow-y: auto; background: #2d3548; border-top: 1px solid rgba(55, 65, 81, .5); border-radius: 24px 24px 0 0; padding: 16px; }
.sheet-header { display: flex; align-items: center; justify-content: center; position: relative; margin-bottom: 16px; }
.sheet-header h2 { margin: 0; font-size: 20px; }
.sheet-close { position: absolute; right: 0; background: none; border: 0; color: #9ca3af; font-size: 22px; cursor: pointer; }
.day-picker { display: flex; flex-wrap: wrap; gap: 6px; justify-content: center; margin-bottom: 16px; }
.day-summary { display: grid; grid-template-columns: 1fr 1fr; gap: 8px; margin-bottom: 16px; }
.stat { background: rgba(26, 29, 41, .6); border-radius: 8px; padding: 12px; text-align: center; }
.stat-caption { font-size: 12px; color: #9ca3af; margin-bottom: 4px; }
.stat-value { font-size: 20px; font-weight: 700; }
.chart { background: rgba(26, 29, 41, .4); border-radius: 12px; padding: 12px; height: 184px; display: flex; align-items: flex-end; gap: 2px; }
.chart-column { flex: 1; display: flex; flex-direction: column; align-items: center; gap: 6px; }
.chart-track { height: 128px; width: 100%; display: flex; align-items: flex-end; }
.chart-bar { width: 100%; border-radius: 4px 4px 0 0; position: relative; transition: height .3s; }
.chart-percent { position: absolute; top: -18px; left: 50%; transform: translateX(-50%); font-size: 10px; font-weight: 600; white-space: nowrap; }
.chart-hour { font-size: 10px; color: #9ca3af; }
.chart-legend { display: flex; justify-content: center; gap: 16px; margin-top: 16px; font-size: 12px; color: #d1d5db; }
.chart-legend .dot { width: 12px; height: 12px; margin-right: 6px; vertical-align: middle; }
.error { min-height: 100vh; display: flex; align-items: center; justify-content: center; padding: 16px; text-align: center; }
.error h1 { font-size: 24px; }
.error p { font-size: 14px; color: #d1d5db; }
.error .btn { background: rgba(255, 255, 255, .1); }
`

const script = `
(function () {
  var sheet = document.getElementById("` + StatisticsSheetID + `");
  var body = document.getElementById("` + statisticsBodyID + `");

  function setOpen(open) {
    sheet.hidden = !open;
    document.querySelectorAll("[data-sheet-close]").forEach(function (el) {
      if (el.classList.contains("sheet-backdrop")) el.hidden = !open;
    });
  }

  function selectDay(day) {
    body.querySelectorAll("[data-day-panel]").forEach(function (panel) {
      panel.hidden = panel.getAttribute("data-day-panel") !== day;
    });
    body.querySelectorAll("[data-day]").forEach(function (btn) {
      var active = btn.getAttribute("data-day") === day;
      btn.setAttribute("aria-selected", active ? "true" : "false");
      btn.classList.toggle("btn-default", active);
      btn.classList.toggle("btn-outline", !active);
    });
  }

  function openStatistics() {
    setOpen(true);
    var current = body.querySelector("[data-selected]");
    var day = current ? current.getAttribute("data-selected") : "Пн";
    fetch("/partials/statistics?day=" + encodeURIComponent(day))
      .then(function (res) { return res.ok ? res.text() : ""; })
      .then(function (html) { if (html) body.innerHTML = html; })
      .catch(function () {});
  }

  document.addEventListener("click", function (event) {
    var target = event.target.closest("[data-open-statistics],[data-sheet-close],[data-day]");
    if (!target) return;
    if (target.hasAttribute("data-open-statistics")) openStatistics();
    else if (target.hasAttribute("data-sheet-close")) setOpen(false);
    else selectDay(target.getAttribute("data-day"));
  });

  var attempt = 0;
  function connect() {
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    var ws = new WebSocket(proto + "//" + location.host + "/ws/dashboard");
    ws.onopen = function () { attempt = 0; };
    ws.onmessage = function (event) {
      var msg;
      try { msg = JSON.parse(event.data); } catch (e) { return; }
      if (msg.topic !== "` + topicSnapshot + `" || !msg.html) return;
      var panel = document.getElementById("` + OccupancyPanelID + `");
      if (panel) panel.outerHTML = msg.html;
    };
    ws.onclose = function () {
      var delay = Math.min(1000 * Math.pow(2, attempt), 10000);
      attempt++;
      setTimeout(connect, delay);
    };
  }
  connect();
})();
`

// Dashboard is the full page: the occupancy panel plus the closed statistics sheet.
func Dashboard(occupancy templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="ru">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Кафе «Восточное»: загруженность</title>
    <style>`+styles+`</style>
  </head>
  <body>
    <main class="shell">
`); err != nil {
			return err
		}
		if err := occupancy.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n    </main>\n"); err != nil {
			return err
		}
		if err := StatisticsSheet().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `
    <script>`+script+`</script>
  </body>
</html>
`)
		return err
	})
}

// ErrorPage is shown when a page cannot be rendered; retry reloads retryURL.
func ErrorPage(retryURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if retryURL == "" {
			retryURL = "/"
		}
		_, err := io.WriteString(w, `<!doctype html>
<html lang="ru">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Произошла ошибка</title>
    <style>`+styles+`</style>
  </head>
  <body>
    <div class="error">
      <div>
        <h1>Произошла ошибка</h1>
        <p>Что-то пошло не так при загрузке страницы.</p>
        <a class="btn" href="`+esc(retryURL)+`">Попробовать ещё раз</a>
      </div>
    </div>
  </body>
</html>
`)
		return err
	})
}
