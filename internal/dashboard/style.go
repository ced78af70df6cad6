package dashboard

const themeBootScript = `<script>(function(){try{var k='stratum_theme';var t=localStorage.getItem(k);if(t!=='light'&&t!=='dark'){t=(window.matchMedia&&window.matchMedia('(prefers-color-scheme: dark)').matches)?'dark':'light'}document.documentElement.setAttribute('data-theme',t);}catch(_){document.documentElement.setAttribute('data-theme','light');}})();</script>`

const themeToggleScript = `<script>(function(){var key='stratum_theme';var root=document.documentElement;var btn=document.getElementById('theme-toggle');function theme(){return root.getAttribute('data-theme')==='dark'?'dark':'light'}function sync(){if(!btn){return}var t=theme();btn.textContent=t==='dark'?'Light theme':'Dark theme';btn.setAttribute('aria-pressed',t==='dark'?'true':'false')}sync();if(btn){btn.addEventListener('click',function(){var next=theme()==='dark'?'light':'dark';root.setAttribute('data-theme',next);try{localStorage.setItem(key,next)}catch(_){}sync()})}})();</script>`

const stylesheet = `<style>
:root {
  --bg: #f6f8fb;
  --panel: #ffffff;
  --panel-2: #f8fafc;
  --ink: #0f172a;
  --muted: #64748b;
  --line: #e2e8f0;
  --line-strong: #cbd5e1;
  --brand: #1e3a5f;
  --primary: #2563eb;
  --success: #1fa971;
  --warning: #f59e0b;
  --destructive: #ef4444;
  --info: #0ea5e9;
  --success-bg: #e9f8ee;
  --warning-bg: #fff5e9;
  --destructive-bg: #fff0f0;
  --info-bg: #ecf7fe;
  --track: #e2e8f0;
  --chip: #f1f5f9;
  --shadow: 0 16px 30px -26px rgba(15, 23, 42, 0.35);
  --radius: 12px;
}
:root[data-theme="dark"] {
  --bg: #070b14;
  --panel: #0f1727;
  --panel-2: #0b1322;
  --ink: #e8f2ff;
  --muted: #9ab0cf;
  --line: #263753;
  --line-strong: #33507a;
  --brand: #86f3ff;
  --primary: #74d7ff;
  --success: #52f3a6;
  --warning: #ffd166;
  --destructive: #ff6b93;
  --info: #6be9ff;
  --success-bg: rgba(82, 243, 166, 0.12);
  --warning-bg: rgba(255, 209, 102, 0.12);
  --destructive-bg: rgba(255, 107, 147, 0.12);
  --info-bg: rgba(107, 233, 255, 0.10);
  --track: #1f3353;
  --chip: #111d33;
  --shadow: 0 20px 34px -24px rgba(1, 4, 12, 0.9);
}
* { box-sizing: border-box; }
body {
  margin: 0;
  background: var(--bg);
  color: var(--ink);
  font-family: "Inter", "IBM Plex Sans", "Segoe UI", system-ui, sans-serif;
  line-height: 1.55;
}
a { color: var(--primary); text-decoration: none; }
a:hover { text-decoration: underline; }
.skip-link { position: absolute; left: -9999px; top: auto; }
.skip-link:focus { left: 12px; top: 10px; background: var(--ink); color: var(--panel); padding: 8px 10px; border-radius: 8px; z-index: 99; }
header.top {
  background: var(--panel);
  border-bottom: 1px solid var(--line);
}
.top-inner, .shell, .foot-inner {
  max-width: 1200px;
  margin: 0 auto;
  padding: 0 22px;
}
.top-inner {
  display: flex;
  align-items: center;
  justify-content: space-between;
  height: 60px;
  gap: 16px;
}
.brand { font-weight: 800; font-size: 1.15rem; color: var(--brand); }
nav a {
  margin-right: 4px;
  padding: 6px 12px;
  border-radius: 8px;
  color: var(--muted);
  font-weight: 600;
  font-size: 0.92rem;
}
nav a.active { background: var(--chip); color: var(--ink); }
.theme-toggle {
  border: 1px solid var(--line-strong);
  background: var(--chip);
  color: var(--ink);
  border-radius: 999px;
  padding: 0.33rem 0.82rem;
  font-size: 0.78rem;
  font-weight: 700;
  cursor: pointer;
}
.shell { padding-top: 22px; padding-bottom: 22px; }
h1 { margin: 0 0 4px; font-size: 1.6rem; }
h2 { margin: 0; font-size: 1.05rem; }
.sub { color: var(--muted); margin: 0 0 18px; }
.card {
  background: var(--panel);
  border: 1px solid var(--line);
  border-radius: var(--radius);
  box-shadow: var(--shadow);
  padding: 16px;
}
.section-block { margin-top: 14px; }
.section-head {
  display: flex;
  align-items: center;
  justify-content: space-between;
  gap: 10px;
  margin-bottom: 12px;
}
.alert {
  display: flex;
  justify-content: space-between;
  align-items: center;
  gap: 12px;
  border: 1px solid var(--destructive);
  background: var(--destructive-bg);
  border-radius: var(--radius);
  padding: 12px 16px;
  margin-bottom: 14px;
}
.alert strong { color: var(--destructive); }
.alert .note a { font-weight: 600; }
.notice {
  margin: 8px 0 0;
  padding: 6px 10px;
  border-radius: 8px;
  border: 1px solid var(--success);
  background: var(--success-bg);
  color: var(--success);
  font-size: 0.8rem;
  font-weight: 600;
}
.btn {
  display: inline-block;
  padding: 4px 10px;
  border: 1px solid var(--line);
  border-radius: 8px;
  font-size: 0.82rem;
  font-weight: 600;
  text-decoration: none;
}
.hero { display: grid; grid-template-columns: 1fr 2fr; gap: 14px; }
.gauge { display: flex; flex-direction: column; align-items: center; justify-content: center; }
.gauge svg { display: block; }
.gauge-track { stroke: var(--track); }
.stroke-success { stroke: var(--success); }
.stroke-warning { stroke: var(--warning); }
.stroke-destructive { stroke: var(--destructive); }
.text-success { fill: var(--success); color: var(--success); }
.text-warning { fill: var(--warning); color: var(--warning); }
.text-destructive { fill: var(--destructive); color: var(--destructive); }
.gauge-caption { fill: var(--muted); }
.text-4xl { font-size: 36px; font-weight: 700; }
.text-2xl { font-size: 24px; font-weight: 700; }
.text-lg { font-size: 18px; font-weight: 700; }
.text-sm { font-size: 14px; }
.text-xs { font-size: 12px; }
.stats { display: grid; grid-template-columns: repeat(4, minmax(0, 1fr)); gap: 12px; }
.stat .k { color: var(--muted); font-size: 0.8rem; text-transform: uppercase; letter-spacing: 0.04em; }
.stat .v { margin-top: 4px; font-size: 1.6rem; font-weight: 700; }
.tone-success .v { color: var(--success); }
.tone-warning .v { color: var(--warning); }
.tone-error .v { color: var(--destructive); }
.pulse { animation: pulse 2s ease-in-out infinite; }
@keyframes pulse { 50% { opacity: .55; } }
.grid-2 { display: grid; grid-template-columns: 2fr 1fr; gap: 14px; margin-top: 14px; }
.table-wrap { overflow-x: auto; }
table { width: 100%; border-collapse: collapse; font-size: 0.92rem; }
caption { text-align: left; color: var(--muted); font-size: 0.82rem; padding-bottom: 6px; }
th { text-align: left; font-weight: 600; color: var(--muted); border-bottom: 1px solid var(--line); padding: 8px; }
td { border-bottom: 1px solid var(--line); padding: 8px; vertical-align: top; }
tr.row-error td { background: var(--destructive-bg); }
.mono { font-family: "JetBrains Mono", ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 0.86rem; }
.pill {
  display: inline-flex;
  align-items: center;
  border-radius: 999px;
  padding: 0.12rem 0.6rem;
  font-size: 0.76rem;
  font-weight: 700;
  border: 1px solid var(--line);
  background: var(--chip);
  color: var(--ink);
}
.pill.success { background: var(--success-bg); color: var(--success); border-color: var(--success); }
.pill.warning { background: var(--warning-bg); color: var(--warning); border-color: var(--warning); }
.pill.error { background: var(--destructive-bg); color: var(--destructive); border-color: var(--destructive); }
.pill.info { background: var(--info-bg); color: var(--info); border-color: var(--info); }
ul.clean { list-style: none; margin: 0; padding: 0; }
ul.clean li { padding: 8px 0; border-bottom: 1px solid var(--line); }
ul.clean li:last-child { border-bottom: 0; }
.dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-right: 8px; background: var(--info); }
.dot.success { background: var(--success); }
.dot.warning { background: var(--warning); }
.dot.error { background: var(--destructive); }
.note { color: var(--muted); font-size: 0.9rem; margin: 6px 0 0; }
.search { display: flex; gap: 8px; margin-bottom: 14px; }
.search input { flex: 1; padding: 8px 12px; border: 1px solid var(--line-strong); border-radius: 8px; background: var(--panel); color: var(--ink); }
.search button { padding: 8px 14px; border-radius: 8px; border: 0; background: var(--primary); color: #fff; font-weight: 600; }
.standards { display: grid; grid-template-columns: repeat(2, minmax(0, 1fr)); gap: 14px; }
.meter { margin-top: 10px; }
.meter-top { display: flex; justify-content: space-between; font-size: 0.88rem; color: var(--muted); }
.track { margin-top: 6px; height: 8px; border-radius: 999px; background: var(--track); overflow: hidden; }
.fill { height: 100%; border-radius: 999px; }
.fill-success { background: var(--success); }
.fill-warning { background: var(--warning); }
.fill-destructive { background: var(--destructive); }
dl.details { display: grid; grid-template-columns: 160px 1fr; gap: 6px 12px; margin: 0; }
dl.details dt { color: var(--muted); }
dl.details dd { margin: 0; }
dd.tone-error { color: var(--destructive); font-weight: 600; }
dd.tone-success { color: var(--success); font-weight: 600; }
.markdown blockquote { margin: 10px 0; padding: 8px 12px; border-left: 3px solid var(--info); background: var(--info-bg); }
.markdown p { margin: 0 0 10px; }
footer.foot { border-top: 1px solid var(--line); margin-top: 28px; background: var(--panel); }
.foot-inner { display: flex; justify-content: space-between; padding-top: 14px; padding-bottom: 14px; color: var(--muted); font-size: 0.84rem; }
@media (max-width: 860px) {
  .hero, .grid-2, .stats, .standards { grid-template-columns: 1fr; }
  dl.details { grid-template-columns: 1fr; }
}
</style>`
